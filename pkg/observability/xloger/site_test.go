package xloger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaller(t *testing.T) {
	site := Caller(0)
	assert.Equal(t, "site_test.go", site.FileBase())
	assert.Positive(t, site.Line)
	assert.Equal(t, "xloger.TestCaller", site.Function)
}

func TestCaller_OutOfRange(t *testing.T) {
	assert.Equal(t, Site{}, Caller(1 << 20))
	assert.Empty(t, Site{}.FileBase())
}

func TestShortFuncName(t *testing.T) {
	assert.Equal(t, "xloger.(*Logger).Notice",
		shortFuncName("github.com/omeyang/dvtloger/pkg/observability/xloger.(*Logger).Notice"))
	assert.Equal(t, "main.main", shortFuncName("main.main"))
}

func TestGoroutineID(t *testing.T) {
	self := goroutineID()
	assert.NotZero(t, self)

	var other uint64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		other = goroutineID()
	}()
	wg.Wait()
	assert.NotZero(t, other)
	assert.NotEqual(t, self, other)
}

func TestThreadDescriptor(t *testing.T) {
	assert.Equal(t, "[Main]", threadDescriptor(1))
	assert.Equal(t, "[Global]<0x1a>", threadDescriptor(26))
}
