package vdom

// Event binding helpers over On. The descriptor names a registered
// callback with its argument ids, e.g. "toggle[12 7-3]"; the
// reconciler turns the binding into a recall id on the live element.

// Mouse events

func OnClick(descriptor string) Attr    { return On("click", descriptor) }
func OnDblClick(descriptor string) Attr { return On("dblclick", descriptor) }

// Keyboard events

func OnKeyDown(descriptor string) Attr { return On("keydown", descriptor) }
func OnKeyUp(descriptor string) Attr   { return On("keyup", descriptor) }

// Form events

func OnInput(descriptor string) Attr  { return On("input", descriptor) }
func OnChange(descriptor string) Attr { return On("change", descriptor) }
func OnSubmit(descriptor string) Attr { return On("submit", descriptor) }
func OnFocus(descriptor string) Attr  { return On("focus", descriptor) }
func OnBlur(descriptor string) Attr   { return On("blur", descriptor) }
