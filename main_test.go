package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeLimit(t *testing.T) {
	rows := "b.b.b.b.\n.b.b.b.b\nb.b.b.b.\n........\n........\n.r.r.r.r\nr.r.r.r.\n.r.r.r.r\n"

	limit, ok := timeLimit(rows + "black\n3\n")
	require.True(t, ok)
	require.Equal(t, 3*time.Second, limit)

	_, ok = timeLimit(rows + "black\n")
	require.False(t, ok, "Empty tenth line")

	_, ok = timeLimit(rows + "black\nsoon\n")
	require.False(t, ok)

	_, ok = timeLimit(rows)
	require.False(t, ok)
}
