package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  Ana Maria  \n"))

	got, err := GetSimpleText(reader, "Enter name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got, "surrounding whitespace is trimmed")
	assert.Contains(t, out.String(), "Enter name")
}

func TestGetSimpleTextEOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("ana@x.com")) // no newline

	got, err := GetSimpleText(reader, "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", got)
}

func TestGetSimpleTextEOFEmpty(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "Enter email", &out)
	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	saved := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("pw123"), nil }
	defer func() { readPassword = saved }()

	var out bytes.Buffer
	pw, err := GetPassword("Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("pw123"), pw)
	assert.Contains(t, out.String(), "Enter password")
	assert.NotContains(t, out.String(), "pw123", "the password is never echoed")
}

func TestGetPasswordReadFailure(t *testing.T) {
	saved := readPassword
	readPassword = func(fd int) ([]byte, error) { return nil, errors.New("not a tty") }
	defer func() { readPassword = saved }()

	var out bytes.Buffer
	_, err := GetPassword("Enter password", &out)
	assert.Error(t, err)
}
