package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/formworks/formbuilder-server/config"
	"github.com/formworks/formbuilder-server/services"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/forms/:id/responses?format=csv|excel
// Without a format the raw response list is returned as JSON; with one, the
// flattened table is streamed as an attachment.
func ListResponses(c *gin.Context) {
	formID := c.Param("id")
	format := strings.ToLower(c.Query("format"))

	if format == "" {
		responses, err := responseService().List(formID)
		if err != nil {
			writeResponseErr(c, err)
			return
		}
		c.JSON(http.StatusOK, responses)
		return
	}

	svc := services.NewExportService(config.DB)
	table, form, err := svc.BuildTable(formID)
	if err != nil {
		writeResponseErr(c, err)
		return
	}

	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := svc.WriteCSV(&buf, table); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Export failed"})
			return
		}
		writeAttachment(c, "text/csv", exportFilename(form.Title, "csv"), buf.Bytes())
	case "excel", "xlsx":
		buf, err := svc.WriteXLSX(table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Export failed"})
			return
		}
		writeAttachment(c, xlsxMIME, exportFilename(form.Title, "xlsx"), buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown export format"})
	}
}

func writeAttachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, contentType, body)
}

// exportFilename derives a safe attachment name from the form title.
func exportFilename(title, ext string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\n', '\r':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if cleaned == "" {
		cleaned = "form"
	}
	return fmt.Sprintf("%s-responses.%s", cleaned, ext)
}
