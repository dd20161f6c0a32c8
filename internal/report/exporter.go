package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/xuri/excelize/v2"
)

const dateFormat = "2006-01-02"

// RegisterExporter renders the full lost-and-found register as an XLSX
// workbook with one sheet per record type.
type RegisterExporter struct {
	lostRepo  repository.LostItemRepository
	foundRepo repository.FoundItemRepository
	matchRepo repository.MatchRepository
}

func NewRegisterExporter(
	lostRepo repository.LostItemRepository,
	foundRepo repository.FoundItemRepository,
	matchRepo repository.MatchRepository,
) *RegisterExporter {
	return &RegisterExporter{
		lostRepo:  lostRepo,
		foundRepo: foundRepo,
		matchRepo: matchRepo,
	}
}

// Export writes the workbook to w.
func (e *RegisterExporter) Export(w io.Writer) error {
	lost, err := e.lostRepo.FindAll()
	if err != nil {
		return fmt.Errorf("failed to load lost items: %w", err)
	}
	found, err := e.foundRepo.FindAll()
	if err != nil {
		return fmt.Errorf("failed to load found items: %w", err)
	}
	matches, err := e.matchRepo.FindAll()
	if err != nil {
		return fmt.Errorf("failed to load matches: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeLostItemsSheet(f, lost); err != nil {
		return err
	}
	if err := writeFoundItemsSheet(f, found); err != nil {
		return err
	}
	if err := writeMatchesSheet(f, matches); err != nil {
		return err
	}

	// The default sheet excelize creates is replaced by Lost Items.
	f.DeleteSheet("Sheet1")

	return f.Write(w)
}

func writeLostItemsSheet(f *excelize.File, items []model.LostItem) error {
	const sheet = "Lost Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"ID", "Item Name", "Description", "Lost Location", "Lost Date", "Status", "Category"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, item := range items {
		row := []interface{}{
			item.ID,
			item.ItemName,
			item.Description,
			item.LostLocation,
			item.LostDate.Format(dateFormat),
			string(item.Status),
			categoryName(item.Category),
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeFoundItemsSheet(f *excelize.File, items []model.FoundItem) error {
	const sheet = "Found Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"ID", "Item Name", "Description", "Found Location", "Found Date", "Status", "Category"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, item := range items {
		row := []interface{}{
			item.ID,
			item.ItemName,
			item.Description,
			item.FoundLocation,
			item.FoundDate.Format(dateFormat),
			string(item.Status),
			categoryName(item.Category),
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeMatchesSheet(f *excelize.File, matches []model.Match) error {
	const sheet = "Matches"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"ID", "Lost Item", "Found Item", "Match Date", "Status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, m := range matches {
		row := []interface{}{
			m.ID,
			itemName(m.LostItem),
			foundItemName(m.FoundItem),
			m.MatchDate.Format(time.RFC3339),
			string(m.Status),
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func categoryName(c *model.Category) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func itemName(item *model.LostItem) string {
	if item == nil {
		return ""
	}
	return item.ItemName
}

func foundItemName(item *model.FoundItem) string {
	if item == nil {
		return ""
	}
	return item.ItemName
}
