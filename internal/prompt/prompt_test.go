package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchant-console/internal/render"
)

// script builds a reader over pre-typed lines and captures the screen
// output for assertions on alerts.
func script(lines ...string) (*Reader, *bytes.Buffer) {
	var out bytes.Buffer
	ui := render.NewConsole(&out)
	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		// Each argument is one typed line; the trailing newline makes a
		// lone "" read as a blank entry rather than an exhausted stream.
		input += "\n"
	}
	return NewReader(strings.NewReader(input), ui), &out
}

func TestEscapeTokensWinOverAnyField(t *testing.T) {
	r, _ := script(`\b`)
	assert.Equal(t, Back, r.NonEmpty("email address").Kind)

	r, _ = script(`\l`)
	_, kind := r.Float("price", nil)
	assert.Equal(t, Logout, kind)

	r, _ = script(`  \b  `)
	// Tokens are recognized after trimming surrounding whitespace.
	_, kind = r.Int("quantity", nil)
	assert.Equal(t, Back, kind)
}

func TestExhaustedInputReadsAsLogout(t *testing.T) {
	r, _ := script()
	reply := r.NonEmpty("email address")
	assert.Equal(t, Logout, reply.Kind)

	// Every subsequent read stays terminal.
	_, kind := r.Confirm("log out")
	assert.Equal(t, Logout, kind)
}

func TestNonEmptyRetriesUntilContent(t *testing.T) {
	r, out := script("", "   ", "hello")
	reply := r.NonEmpty("product name")
	require.Equal(t, Accepted, reply.Kind)
	assert.Equal(t, "hello", reply.Value)
	assert.Contains(t, out.String(), "[Alert]")
}

func TestOptionalBlankBecomesNotSpecified(t *testing.T) {
	r, _ := script("")
	reply := r.Optional("brand")
	require.Equal(t, Accepted, reply.Kind)
	assert.Equal(t, NotSpecified, reply.Value)

	r, _ = script("acme")
	assert.Equal(t, "acme", r.Optional("brand").Value)
}

func TestFloatRetriesOnGarbageAndFailedValidation(t *testing.T) {
	r, out := script("abc", "-5", "12.5")
	v, kind := r.Float("price", func(f float64) error {
		if f <= 0 {
			return errors.New("price must be above 0")
		}
		return nil
	})
	require.Equal(t, Accepted, kind)
	assert.InDelta(t, 12.5, v, 1e-9)
	assert.Contains(t, out.String(), "not a valid price")
	assert.Contains(t, out.String(), "price must be above 0")
}

func TestIntRetriesOnGarbage(t *testing.T) {
	r, _ := script("2.5", "three", "3")
	v, kind := r.Int("quantity", nil)
	require.Equal(t, Accepted, kind)
	assert.Equal(t, 3, v)
}

func TestDateAcceptsEntryFormatAndBlank(t *testing.T) {
	r, _ := script("2023 3 5")
	d, kind := r.Date("expiry date")
	require.Equal(t, Accepted, kind)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC), d.UTC())

	r, _ = script("")
	d, kind = r.Date("expiry date")
	require.Equal(t, Accepted, kind)
	assert.Nil(t, d)

	r, out := script("2023-03-05", "2023 3 5")
	d, kind = r.Date("expiry date")
	require.Equal(t, Accepted, kind)
	require.NotNil(t, d)
	assert.Contains(t, out.String(), "[Alert]")
}

func TestConfirm(t *testing.T) {
	r, _ := script("y")
	ok, kind := r.Confirm("remove this product")
	require.Equal(t, Accepted, kind)
	assert.True(t, ok)

	r, _ = script("N")
	ok, kind = r.Confirm("remove this product")
	require.Equal(t, Accepted, kind)
	assert.False(t, ok)

	// Back declines rather than unwinding further.
	r, _ = script(`\b`)
	ok, kind = r.Confirm("remove this product")
	require.Equal(t, Accepted, kind)
	assert.False(t, ok)

	r, _ = script(`\l`)
	_, kind = r.Confirm("remove this product")
	assert.Equal(t, Logout, kind)

	r, out := script("maybe", "y")
	ok, kind = r.Confirm("remove this product")
	require.Equal(t, Accepted, kind)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "only y or n is accepted")
}

func TestUntilSurfacesValidationErrors(t *testing.T) {
	r, out := script("Toys", "Books")
	reply := r.Until("category", func(in string) error {
		if in != "Books" {
			return errors.New("no such category")
		}
		return nil
	})
	require.Equal(t, Accepted, reply.Kind)
	assert.Equal(t, "Books", reply.Value)
	assert.Contains(t, out.String(), "no such category")
}
