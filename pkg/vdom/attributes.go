package vdom

import "strings"

// Global attributes

// ID sets the id attribute.
func ID(id string) Attr { return A("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return A("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return A("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return A("data-"+key, value) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return A("title", title) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return A("hidden", "") }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return A("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return A("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return A("rel", rel) }

// Src sets the src attribute.
func Src(url string) Attr { return A("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return A("alt", text) }

// Form input attributes

// Name sets the name attribute.
func Name(name string) Attr { return A("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return A("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return A("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return A("placeholder", text) }

// For sets the for attribute.
func For(id string) Attr { return A("for", id) }

// Form state attributes

// Disabled sets the disabled attribute.
func Disabled() Attr { return A("disabled", "") }

// Readonly sets the readonly attribute.
func Readonly() Attr { return A("readonly", "") }

// Required sets the required attribute.
func Required() Attr { return A("required", "") }

// Checked sets the checked attribute.
func Checked() Attr { return A("checked", "") }

// Selected sets the selected attribute.
func Selected() Attr { return A("selected", "") }

// Conditional attributes

// ClassIf adds a class only when condition holds.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return A("class", class)
	}
	return Attr{}
}

// AttrIf adds an attribute only when condition holds.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}
