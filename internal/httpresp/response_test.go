package httpresp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestListNilIsEmptyArray(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List[string](c, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())
}

func TestPage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Page(c, []int{4, 5}, 2, 2, 9)

	assert.JSONEq(t, `{"data":[4,5],"page":2,"limit":2,"total":9}`, w.Body.String())
}
