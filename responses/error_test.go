package responses

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := NewError(http.StatusNotFound, 1, "unknown route: foo")
	assert.Equal(t, `status:404, code:1, message:"unknown route: foo"`, err.Error())
}
