package valueobject

import "fmt"

// FormatID renders a record identifier as "#00042"
func FormatID(id int64) string {
	return fmt.Sprintf("#%05d", id)
}
