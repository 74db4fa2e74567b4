package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("HIREBOARD_TEST_MODE") == "" {
			_ = os.Setenv("HIREBOARD_TEST_MODE", "1")
		}
	})
}
