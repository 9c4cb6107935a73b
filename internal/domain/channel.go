package domain

// ChannelKind tells whether a Channel value is a human-readable name or a
// platform id. Posting requires an id or a name the platform accepts.
type ChannelKind string

const (
	ChannelKindName ChannelKind = "name"
	ChannelKindID   ChannelKind = "id"
)

type Channel struct {
	Value string      `json:"value"`
	Kind  ChannelKind `json:"kind"`
}

func ChannelName(name string) Channel {
	return Channel{Value: name, Kind: ChannelKindName}
}

func ChannelID(id string) Channel {
	return Channel{Value: id, Kind: ChannelKindID}
}

func (c Channel) IsID() bool {
	return c.Kind == ChannelKindID
}

func (c Channel) String() string {
	return c.Value
}

// ChannelValues returns the raw values of channels, preserving order.
func ChannelValues(channels []Channel) []string {
	values := make([]string, 0, len(channels))
	for _, c := range channels {
		values = append(values, c.Value)
	}
	return values
}
