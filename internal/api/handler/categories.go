package handler

import (
	"context"
	"net/http"

	"github.com/courtiq/cogscore/internal/cache"
	"github.com/courtiq/cogscore/internal/category"
)

// FieldView describes one counted sub-category and its tag texts.
type FieldView struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	PositiveTag string `json:"positive_tag"`
	NegativeTag string `json:"negative_tag"`
}

// CategoryView describes one cognitive category.
type CategoryView struct {
	Name    string      `json:"name"`
	Slug    string      `json:"slug"`
	Columns []string    `json:"columns"`
	Fields  []FieldView `json:"fields"`
}

// ListCategories returns the category table.
// @Summary List categories
// @Description Returns the cognitive categories in display order with the CSV columns and tag texts counted for each.
// @Tags categories
// @Produce json
// @Success 200 {array} CategoryView
// @Router /categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "categories", cache.TTLCategories, func(context.Context) (interface{}, error) {
		tbl := h.store.Categories()
		out := make([]CategoryView, 0, len(tbl.Categories()))
		for _, c := range tbl.Categories() {
			v := CategoryView{Name: c.Name, Slug: c.Slug, Columns: c.Columns}
			for _, f := range c.Fields {
				v.Fields = append(v.Fields, FieldView{
					Key:         f.Key,
					Label:       f.Label,
					PositiveTag: tbl.Tag(f, category.Positive),
					NegativeTag: tbl.Tag(f, category.Negative),
				})
			}
			out = append(out, v)
		}
		return out, nil
	})
}
