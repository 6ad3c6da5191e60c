package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute from a literal CSS string.
func StyleAttr(style string) Attr { return attr("style", style) }

// Styles sets the style attribute from a mapping. Entries with nil values
// are left out when the style is written.
func Styles(style Style) Attr { return attr("style", style) }

// InnerHTML replaces the element's content with html verbatim. Children of
// the element are ignored. The caller is responsible for sanitizing html.
func InnerHTML(html string) Attr { return attr("innerHTML", html) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Download sets the download attribute.
func Download(filename ...string) Attr {
	if len(filename) > 0 {
		return attr("download", filename[0])
	}
	return attr("download", true)
}

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled attribute.
func Disabled(disabled ...bool) Attr { return attr("disabled", len(disabled) == 0 || disabled[0]) }

// Checked sets the checked attribute.
func Checked(checked ...bool) Attr { return attr("checked", len(checked) == 0 || checked[0]) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }

// ViewBox sets the SVG viewBox attribute.
func ViewBox(box string) Attr { return attr("viewBox", box) }

// Conditional attributes

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges multiple class values.
// Accepts string, []string, and map[string]bool.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			for class, include := range v {
				if include && class != "" {
					result = append(result, class)
				}
			}
		}
	}
	return attr("class", strings.Join(result, " "))
}
