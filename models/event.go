package models

// Event is what subscribers of a class channel receive.
type Event struct {
	Type   string      `json:"type"`
	Course string      `json:"course"`
	Class  string      `json:"class"`
	Data   interface{} `json:"data"`
}

// ChannelKey identifies the class channel an event belongs to.
func (e Event) ChannelKey() string {
	return ChannelKey(e.Course, e.Class)
}

func ChannelKey(course, class string) string {
	return course + ":" + class
}
