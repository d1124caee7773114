package fieldreader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) ([][]string, []int) {
	var rows [][]string
	var lines []int
	for r.Next() {
		rows = append(rows, r.Fields())
		lines = append(lines, r.Line())
	}
	return rows, lines
}

func TestSkipsCommentsAndBlankLines(t *testing.T) {
	input := "% module channel\n" +
		"\n" +
		"   \t \n" +
		"1 0 99 Si DE 5\n" +
		"   % indented comment\n" +
		"  1   1 99\tSi DE 6   \n"

	r := New(strings.NewReader(input), "map.txt", 6)
	rows, lines := readAll(t, r)
	require.NoError(t, r.Err())

	assert.Equal(t, [][]string{
		{"1", "0", "99", "Si", "DE", "5"},
		{"1", "1", "99", "Si", "DE", "6"},
	}, rows)
	assert.Equal(t, []int{4, 6}, lines)
}

func TestExtraFieldsAreKept(t *testing.T) {
	r := New(strings.NewReader("5 Si DE 1 1 100 1.0 0.0 2.0 3.0\n"), "cal.txt", 8)
	rows, _ := readAll(t, r)
	require.NoError(t, r.Err())
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 10)
}

func TestTooFewFields(t *testing.T) {
	input := "1 0 99 Si DE 5\n% fine\n1 1 99 Si DE\n1 2 99 Si DE 7\n"
	r := New(strings.NewReader(input), "map.txt", 6)
	rows, _ := readAll(t, r)

	assert.Len(t, rows, 1)
	err := r.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map.txt:3")

	var fce *FieldCountError
	require.True(t, errors.As(err, &fce))
	assert.Equal(t, 6, fce.Wanted)
	assert.Equal(t, 5, fce.Got)

	// The reader stays stopped after an error
	assert.False(t, r.Next())
}

func TestByteOrderMark(t *testing.T) {
	r := New(strings.NewReader("\xef\xbb\xbf% header\n1 0 99 Si DE 5\n"), "map.txt", 6)
	rows, _ := readAll(t, r)
	require.NoError(t, r.Err())
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][0])
}

func TestByteOrderMarkBeforeData(t *testing.T) {
	r := New(strings.NewReader("\xef\xbb\xbf1 0 99 Si DE 5\n"), "map.txt", 6)
	rows, _ := readAll(t, r)
	require.NoError(t, r.Err())
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][0])
}

func TestWrap(t *testing.T) {
	r := New(strings.NewReader("a b\nc d\n"), "cal.txt", 2)
	require.True(t, r.Next())
	require.True(t, r.Next())

	err := r.Wrap(errors.New("bad coefficient"))
	assert.EqualError(t, err, "cal.txt:2: bad coefficient")
	assert.Nil(t, r.Wrap(nil))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "map.txt")
	require.NoError(t, os.WriteFile(fn, []byte("1 0 99 Si DE 5\n"), 0644))

	r, err := Open(fn, 6)
	require.NoError(t, err)
	rows, _ := readAll(t, r)
	require.NoError(t, r.Err())
	assert.Len(t, rows, 1)
	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"), 6)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
