// Package export renders month schedules to Excel workbooks: one sheet per
// room, one row per day of the month grid, one column per half-hour slot.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"roomcal/internal/config"
	"roomcal/internal/domain"
	"roomcal/internal/models"
	"roomcal/internal/schedule"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type Exporter struct {
	store  domain.ReservationStore
	cfg    *config.Config
	logger *zerolog.Logger
}

func NewExporter(store domain.ReservationStore, cfg *config.Config, logger *zerolog.Logger) *Exporter {
	return &Exporter{store: store, cfg: cfg, logger: logger}
}

// WriteMonth writes the month workbook for the month containing ref and
// returns the file path.
func (e *Exporter) WriteMonth(ctx context.Context, ref models.Day) (string, error) {
	if err := os.MkdirAll(e.cfg.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	slots, err := schedule.Slots(e.cfg.Hours)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for _, room := range e.cfg.Rooms {
		reservations, err := e.store.Get(ctx, room)
		if err != nil {
			return "", fmt.Errorf("error loading reservations for %s: %w", room, err)
		}

		if err := e.writeRoomSheet(f, room, ref, slots, reservations, headerStyle); err != nil {
			return "", err
		}
	}

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("schedule_%04d-%02d.xlsx", ref.Year(), int(ref.Month()))
	filePath := filepath.Join(e.cfg.Exports.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Msg("schedule workbook created")
	return filePath, nil
}

func (e *Exporter) writeRoomSheet(f *excelize.File, room string, ref models.Day, slots []string, reservations []models.Reservation, headerStyle int) error {
	if _, err := f.NewSheet(room); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", room, err)
	}

	// Header row: date column then one column per slot.
	_ = f.SetCellValue(room, "A1", fmt.Sprintf("%s %d", ref.Month(), ref.Year()))
	for i, slot := range slots {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		_ = f.SetCellValue(room, cell, slot)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(slots)+1, 1)
	_ = f.SetCellStyle(room, "A1", lastHeader, headerStyle)

	row := 2
	for _, day := range schedule.MonthGrid(ref) {
		if !schedule.InMonth(day, ref) {
			continue
		}

		dateCell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(room, dateCell, day.String())

		for i, slot := range slots {
			status, matches, err := schedule.ResolveLabel(reservations, day, slot)
			if err != nil {
				return err
			}
			if status == models.SlotAvailable {
				continue
			}

			cell, _ := excelize.CoordinatesToCellName(i+2, row)
			_ = f.SetCellValue(room, cell, cellText(status, matches))
		}
		row++
	}

	_ = f.SetColWidth(room, "A", "A", 12)
	return nil
}

func cellText(status string, matches []models.Reservation) string {
	name := ""
	for _, res := range matches {
		// Prefer the booked entry's name when an inquiry overlaps it.
		if name == "" || res.Status == models.StatusBooked {
			name = res.MeetingName
		}
		if res.Status == models.StatusBooked {
			break
		}
	}
	if status == models.SlotInquiry {
		return name + " (inquiry)"
	}
	return name
}
