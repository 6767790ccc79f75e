package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
)

type phoneBody struct {
	Phone string `json:"phone" validate:"required,max=8"`
	Name  string `json:"name"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBody(t *testing.T) {
	var ok phoneBody
	require.NoError(t, DecodeJSONBody(post(`{"phone":"5551234"}`), &ok))
	assert.Equal(t, "5551234", ok.Phone)

	var missing phoneBody
	err := DecodeJSONBody(post(`{"name":"Dana"}`), &missing)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]string{"phone": "is required"}, typed.Details())

	var unknown phoneBody
	err = DecodeJSONBody(post(`{"phone":"1","extra":true}`), &unknown)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	var empty struct {
		Note string `json:"note"`
	}
	assert.NoError(t, DecodeJSONBody(post(""), &empty))
}

func TestDecodeJSONBodyRejectsOversizedBody(t *testing.T) {
	var dest struct {
		Image string `json:"image"`
	}
	body := `{"image":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	err := DecodeJSONBody(post(body), &dest)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "request body too large", typed.Message())
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=x&big=500", nil)

	v, err := ParseQueryInt(r, "limit", 25, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = ParseQueryInt(r, "missing", 25, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	_, err = ParseQueryInt(r, "bad", 25, 1, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, err = ParseQueryInt(r, "big", 25, 1, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Gelato", SanitizeString("  Gelato  ", 0))
	assert.Equal(t, "Gel", SanitizeString("Gelato", 3))
	assert.Equal(t, "Café", SanitizeString("Café Racer", 4))

	r := httptest.NewRequest(http.MethodGet, "/?q=%20runtz%20", nil)
	assert.Equal(t, "runtz", QueryString(r, "q", 50))
}
