package scraper

import (
	"html"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

// trickXPath locates the block naming the trick currently being taught
const trickXPath = `//*[@id='trukk' or contains(concat(' ', normalize-space(@class), ' '), ' trukk ')]`

var strict = bluemonday.StrictPolicy()

// ExtractOptions returns the non-empty option values of the named select.
// With an empty name every option on the page is considered.
func ExtractOptions(htmlStr, selectName string) []string {
	doc, err := LoadHTML(htmlStr)
	if err != nil {
		return nil
	}

	selector := "option"
	if selectName != "" {
		selector = "select[name='" + selectName + "'] option"
	}

	var values []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v := strings.TrimSpace(s.AttrOr("value", "")); v != "" {
			values = append(values, v)
		}
	})

	// Fall back to any option when the named select is missing
	if len(values) == 0 && selectName != "" {
		return ExtractOptions(htmlStr, "")
	}
	return Deduplicate(values)
}

// ExtractInputValue returns the value of the first input with the given name
func ExtractInputValue(htmlStr, name string) (string, bool) {
	doc, err := LoadHTML(htmlStr)
	if err != nil {
		return "", false
	}
	sel := doc.Find("input[name='" + name + "']").First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr("value")
}

// ExtractFoodDrink reads the food and drink icons of the feeding form.
// Missing icons are reported as types.DefaultIcon.
func ExtractFoodDrink(htmlStr string) types.FoodDrink {
	out := types.FoodDrink{FoodIcon: types.DefaultIcon, DrinkIcon: types.DefaultIcon}

	doc, err := LoadHTML(htmlStr)
	if err != nil {
		return out
	}

	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := s.AttrOr("src", "")
		lower := strings.ToLower(src)
		switch {
		case out.FoodIcon == types.DefaultIcon && strings.Contains(lower, "kaja"):
			out.FoodIcon = path.Base(src)
		case out.DrinkIcon == types.DefaultIcon && strings.Contains(lower, "pia"):
			out.DrinkIcon = path.Base(src)
		}
		return out.FoodIcon == types.DefaultIcon || out.DrinkIcon == types.DefaultIcon
	})

	return out
}

// ExtractTrick returns the plain-text name of the trick being taught, or ""
func ExtractTrick(htmlStr string) string {
	doc, err := LoadHTMLNode(htmlStr)
	if err != nil {
		return ""
	}

	node, err := htmlquery.Query(doc, trickXPath)
	if err != nil || node == nil {
		return ""
	}

	text := strict.Sanitize(htmlquery.OutputHTML(node, false))
	return NormalizeWhitespace(html.UnescapeString(text))
}
