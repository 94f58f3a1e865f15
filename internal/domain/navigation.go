package domain

// NavItem is a node of the product's navigation tree.
type NavItem struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Href        string     `json:"href"`
	Icon        string     `json:"icon,omitempty"`
	Permission  Permission `json:"-"`
	Children    []NavItem  `json:"children,omitempty"`
}

// QuickAction is a one-step task offered in the palette, such as booking a
// walk-in.
type QuickAction struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Href        string     `json:"href"`
	Shortcut    string     `json:"shortcut,omitempty"`
	Permission  Permission `json:"-"`
}
