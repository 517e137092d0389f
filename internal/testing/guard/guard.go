package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("PALMLEDGER_TEST_MODE") == "" {
			_ = os.Setenv("PALMLEDGER_TEST_MODE", "1")
		}
	})
}
