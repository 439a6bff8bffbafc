package main

import (
	"strconv"
	"time"

	"github.com/hatlonely/busliste/rdb"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

var formats = map[string]bool{"table": true, "csv": true, "markdown": true}

// render 按 --format 输出表格
func (a *app) render(header table.Row, rows []table.Row, footer ...table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	for _, row := range footer {
		t.AppendFooter(row)
	}

	switch a.format {
	case "csv":
		t.RenderCSV()
	case "markdown":
		t.RenderMarkdown()
	default:
		t.Render()
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return rdb.FormatTime(*t)
}

func formatCap(c *uint32) string {
	if c == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*c), 10)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := rdb.ParseTime(s)
	if err != nil {
		return time.Time{}, errors.WithMessage(err, "invalid date")
	}
	return t, nil
}
