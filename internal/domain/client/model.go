package client

// Client represents an agency client. Tickets reference clients by name, not
// id, so a client may exist only as a denormalized name on tickets.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VirtualID marks a client synthesized from ticket data when no formal client
// record exists under that name.
const VirtualID = "virtual"

// Virtual builds a synthetic client entry for a name that only appears on
// tickets.
func Virtual(name string) *Client {
	return &Client{ID: VirtualID, Name: name}
}

// IsVirtual reports whether the client was synthesized rather than loaded
// from the client collection.
func (c *Client) IsVirtual() bool {
	return c.ID == VirtualID
}
