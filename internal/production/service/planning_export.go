package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const planningExportSheet = "Planning"

var planningExportHeaders = []string{
	"Planning", "Article No", "Article", "Route", "Route Type", "Status", "Order Slip",
	"Total Payment", "Start", "End", "Process Days", "Late",
}

// Export renders every record matching filters into a workbook. Records are
// normalized first, like any other read.
func (s *ArticlePlanningService) Export(ctx context.Context, filters map[string]string) (*excelize.File, string, error) {
	if err := s.sweep(ctx, filters); err != nil {
		return nil, "", err
	}
	items, err := s.repos.ArticlePlanning.FindAllUnpaged(ctx, filters)
	if err != nil {
		return nil, "", Persistence(err)
	}
	for i := range items {
		normalized, err := s.normalize(ctx, &items[i])
		if err != nil {
			return nil, "", err
		}
		items[i] = *normalized
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", planningExportSheet)
	sheet := planningExportSheet

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range planningExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for idx, p := range items {
		row := idx + 2
		var articleNo, articleName, routeName, routeType string
		if p.Article != nil {
			articleNo, articleName = p.Article.ArticleNo, p.Article.ArticleName
		}
		if p.PlanningRoute != nil {
			routeName, routeType = p.PlanningRoute.PlanningRouteName, p.PlanningRoute.PlanningRouteType
		}
		late := "No"
		if p.Late {
			late = "Yes"
		}
		payment, _ := p.TotalPayment.Float64()

		values := []interface{}{
			p.PlanningName, articleNo, articleName, routeName, routeType, p.Status, p.OrderSlip,
			payment, p.WhenProcessStart.Format(dateLayout), p.WhenProcessEnd.Format(dateLayout),
			p.ProcessDays, late,
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	widths := []float64{12, 14, 24, 20, 12, 12, 12, 14, 12, 12, 12, 8}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("article_planning_%s.xlsx", s.clock().Format("20060102"))
	return f, filename, nil
}

// ExportHeaders returns the column titles of the planning workbook.
func ExportHeaders() []string {
	out := make([]string, len(planningExportHeaders))
	copy(out, planningExportHeaders)
	return out
}
