package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bookstore-catalog/internal/domains/book/model"
)

const exportSheet = "Book list"

var exportHeaders = []string{
	"ID",
	"Name",
	"Author",
	"Category",
	"Publisher",
	"Is Published",
	"Average Rating",
	"Total Reviews",
	"Created At",
}

func (s *bookService) ExportExcel(ctx context.Context) (*excelize.File, error) {
	books, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildBooksExcelFile(books []*model.BookResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	// Row 1: header
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle)
	}

	// Data rows start at row 2
	for i, b := range books {
		row := []any{
			b.ID,
			b.Name,
			b.Author.Name,
			b.Category.Name,
			"",
			b.IsPublished,
			nil,
			b.TotalReviews,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if b.Publisher != nil {
			row[4] = b.Publisher.Name
		}
		if b.AverageRating != nil {
			row[6] = *b.AverageRating
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	_ = f.SetColWidth(exportSheet, "A", lastCol, 18)
	return f, nil
}
