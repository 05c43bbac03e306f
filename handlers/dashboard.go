package handlers

import (
	"bytes"
	"fmt"
	"time"

	"employee_management/services"
	"employee_management/types"

	"github.com/gofiber/fiber/v2"
)

func GetDashboard(c *fiber.Ctx) error {
	stats, err := Services.Reports.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    stats,
	})
}

// DownloadReport sends the salary or attendance report as a CSV attachment.
func DownloadReport(c *fiber.Ctx) error {
	var filter services.ReportFilter
	if err := c.QueryParser(&filter); err != nil {
		return invalidQuery(c)
	}

	kind := services.ReportType(c.Params("type"))
	var buf bytes.Buffer
	if err := Services.Reports.WriteCSV(c.UserContext(), &buf, kind, filter); err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("%s_report_%s.csv", kind, time.Now().Format("2006-01-02"))
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}
