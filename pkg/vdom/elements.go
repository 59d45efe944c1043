package vdom

// Typed element constructors over El. The set covers the elements the
// runtime's own components and tools render; anything else goes
// through El directly.

// Sectioning elements

func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Article(args ...any) *VNode { return El("article", args...) }

// Heading elements

func H1(args ...any) *VNode { return El("h1", args...) }
func H2(args ...any) *VNode { return El("h2", args...) }
func H3(args ...any) *VNode { return El("h3", args...) }
func H4(args ...any) *VNode { return El("h4", args...) }

// Text content elements

func Div(args ...any) *VNode  { return El("div", args...) }
func P(args ...any) *VNode    { return El("p", args...) }
func Span(args ...any) *VNode { return El("span", args...) }
func Pre(args ...any) *VNode  { return El("pre", args...) }
func Ul(args ...any) *VNode   { return El("ul", args...) }
func Ol(args ...any) *VNode   { return El("ol", args...) }
func Li(args ...any) *VNode   { return El("li", args...) }
func Hr(args ...any) *VNode   { return El("hr", args...) }
func Br(args ...any) *VNode   { return El("br", args...) }

// Inline text semantics

// Anchor is the <a> element; the name A belongs to the attribute
// constructor.
func Anchor(args ...any) *VNode { return El("a", args...) }

func Strong(args ...any) *VNode { return El("strong", args...) }
func Em(args ...any) *VNode     { return El("em", args...) }
func Small(args ...any) *VNode  { return El("small", args...) }
func Code(args ...any) *VNode   { return El("code", args...) }

// Embedded content

func Img(args ...any) *VNode { return El("img", args...) }

// Table elements

func Table(args ...any) *VNode { return El("table", args...) }
func Thead(args ...any) *VNode { return El("thead", args...) }
func Tbody(args ...any) *VNode { return El("tbody", args...) }
func Tr(args ...any) *VNode    { return El("tr", args...) }
func Th(args ...any) *VNode    { return El("th", args...) }
func Td(args ...any) *VNode    { return El("td", args...) }

// Form elements

func Form(args ...any) *VNode     { return El("form", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }
func Select(args ...any) *VNode   { return El("select", args...) }
func Option(args ...any) *VNode   { return El("option", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }
