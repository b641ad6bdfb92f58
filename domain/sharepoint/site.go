package sharepoint

// Web represents the root web of the site collection being scanned
type Web struct {
	ID    string
	URL   string
	Title string
}

// List represents a SharePoint list or document library
type List struct {
	ID        string
	Title     string
	URL       string
	ItemCount int
}

// IsEmpty returns true if the list has no items
func (l *List) IsEmpty() bool {
	return l.ItemCount == 0
}

// Item represents a SharePoint list item, file, or folder
type Item struct {
	GUID   string
	ListID string
	ID     int
	URL    string
	Name   string
}

// GetDisplayName returns a user-friendly name for the item
func (i *Item) GetDisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.GUID // Fallback to GUID if no name
}

// Group represents a SharePoint permission group
type Group struct {
	ID         int64
	Title      string
	OwnerTitle string
}
