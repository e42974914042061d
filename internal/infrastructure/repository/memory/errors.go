package memory

import "fmt"

func errRecordNotFound(kind string, id any) error {
	return fmt.Errorf("%s %v not found", kind, id)
}
