package preview

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

func renderTable(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	rows := n.Props.Rows("rows")
	cols := n.Props.Strings("columns")
	if len(cols) == 0 && len(rows) > 0 {
		cols = slices.Sorted(maps.Keys(rows[0]))
	}

	head := El("tr")
	for _, c := range cols {
		head.Add(TextEl("th", c))
	}
	body := El("tbody")
	for _, row := range rows {
		tr := El("tr")
		for _, c := range cols {
			td := El("td")
			if c == "status" {
				s := cellText(row[c])
				td.Add(TextEl("span", s, "class", "badge status-"+s))
			} else {
				td.Text = cellText(row[c])
			}
			tr.Add(td)
		}
		body.Add(tr)
	}

	card := El("div", "class", "card table-card")
	if title := n.Props.String("title", ""); title != "" {
		card.Add(El("div", "class", "card-header").Add(TextEl("span", title, "class", "card-title")))
	}
	return card.Add(El("table", "class", "data-table").Add(El("thead").Add(head), body))
}

func renderList(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	items, _ := n.Props.Get("items")
	arr, _ := items.([]any)

	ul := El("ul", "class", "list")
	for _, it := range arr {
		if obj, ok := it.(ir.Props); ok {
			label := obj.String("label", "")
			if label == "" {
				label = cellText(obj)
			}
			ul.Add(TextEl("li", label))
			continue
		}
		ul.Add(TextEl("li", cellText(it)))
	}

	card := El("div", "class", "card list-card")
	if title := n.Props.String("title", ""); title != "" {
		card.Add(El("div", "class", "card-header").Add(TextEl("span", title, "class", "card-title")))
	}
	return card.Add(ul)
}

// cellText formats a JSON-native value for display.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
