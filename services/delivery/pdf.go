package delivery

import (
	"bytes"
	"fmt"

	"stayledger/models"

	"github.com/go-pdf/fpdf"
)

// Letterhead is printed at the top of every bill.
type Letterhead struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// PDFRenderer lays a generated bill out as a one-page A4 document.
type PDFRenderer struct {
	Letterhead Letterhead
}

func NewPDFRenderer(lh Letterhead) *PDFRenderer {
	return &PDFRenderer{Letterhead: lh}
}

func (r *PDFRenderer) Render(bill models.GeneratedBill) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rental Bill "+bill.ID, true)
	pdf.AddPage()

	lh := r.Letterhead
	pdf.SetFont("Times", "B", 24)
	pdf.CellFormat(0, 12, lh.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 12)
	for _, line := range []string{lh.Address, phoneLine(lh.Phone), emailLine(lh.Email)} {
		if line != "" {
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)
	y := pdf.GetY()
	pdf.Line(15, y, 195, y)
	pdf.Ln(8)

	pdf.SetFont("Times", "B", 16)
	pdf.CellFormat(0, 10, "Rental Bill Details", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "", 12)
	for _, row := range billRows(bill) {
		pdf.CellFormat(80, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(100, 8, row[1], "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render bill %s: %w", bill.ID, err)
	}
	return buf.Bytes(), nil
}

func billRows(bill models.GeneratedBill) [][2]string {
	const layout = "02 Jan 2006"
	return [][2]string{
		{"Bill Number", bill.ID},
		{"Utility Bill ID", bill.Bill.ID},
		{"Tenant ID", bill.Tenant.ID},
		{"Tenant Name", bill.Tenant.Name},
		{"Room Number", bill.Room.RoomNumber},
		{"Booking ID", bill.Booking.ID},
		{"Stay", bill.Booking.CheckIn.Format(layout) + " - " + bill.Booking.CheckOut.Format(layout)},
		{"Billing Month", bill.Month},
		{"Electricity Units", bill.Bill.ElectricityUnits.String()},
		{"Unit Price", bill.Bill.UnitPrice.StringFixed(2)},
		{"Monthly Rent", bill.Room.Rent.StringFixed(2)},
		{"Total Amount", bill.Total.StringFixed(2)},
	}
}

func phoneLine(p string) string {
	if p == "" {
		return ""
	}
	return "Mobile: " + p
}

func emailLine(e string) string {
	if e == "" {
		return ""
	}
	return "Email: " + e
}
