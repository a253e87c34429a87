package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// LabelInfo holds the data encoded into each room label's QR code.
type LabelInfo struct {
	RoomID    string  `json:"room"`
	Type      string  `json:"type"`
	Width     float64 `json:"width_m"`
	Depth     float64 `json:"depth_m"`
	X         float64 `json:"x_m"`
	Y         float64 `json:"y_m"`
	AreaSqm   float64 `json:"area_sqm"`
	AreaSqft  int     `json:"area_sqft"`
	Doors     int     `json:"doors"`
	Windows   int     `json:"windows"`
	FloorName string  `json:"floor,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a sheet of QR-coded room labels, one per placed
// room, for tagging rooms on site. The QR code carries the room's
// LabelInfo as JSON.
func ExportLabels(path string, result model.Result, settings model.Settings) error {
	labels := CollectLabelInfos(result, settings)
	if len(labels) == 0 {
		return fmt.Errorf("no rooms placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.RoomID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.RoomID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncateToWidth(pdf, info.RoomID, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.1f x %.1f m (%d sqft)", info.Width, info.Depth, info.AreaSqft)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("@ (%.1f, %.1f) | %d door(s), %d window(s)", info.X, info.Y, info.Doors, info.Windows)
	pdf.CellFormat(textW, 3, truncateToWidth(pdf, pos, textW), "", 1, "L", false, 0, "")

	if info.FloorName != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Floor: "+info.FloorName, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncateToWidth shortens s with an ellipsis until it fits in w.
func truncateToWidth(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos extracts label information for every placed room, in
// placement order.
func CollectLabelInfos(result model.Result, settings model.Settings) []LabelInfo {
	var labels []LabelInfo
	for _, r := range result.Rooms {
		l := model.LabelFor(r)
		info := LabelInfo{
			RoomID:   r.ID,
			Type:     string(r.Type),
			Width:    r.Width,
			Depth:    r.Height,
			X:        r.X,
			Y:        r.Y,
			AreaSqm:  r.Area(),
			AreaSqft: l.AreaSqft,
			Doors:    len(r.Doors),
			Windows:  len(r.Windows),
		}
		if mat, ok := settings.FloorMaterials[r.Type]; ok {
			info.FloorName = mat.Name
		}
		labels = append(labels, info)
	}
	return labels
}
