package sqlparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafHasNoChildren(t *testing.T) {
	leaf := NewLeaf(NodeIdentifier, "a")
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, 0, leaf.Len())

	err := leaf.Append(NewLeaf(NodeIdentifier, "b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLeafChildren))
	assert.Equal(t, 0, leaf.Len())
}

func TestBranchHasNoPayload(t *testing.T) {
	b := NewBranch(NodeColumnList, NewLeaf(NodeIdentifier, "a"))
	assert.False(t, b.IsLeaf())
	assert.Equal(t, "", b.Value)
	require.NoError(t, b.Append(NewLeaf(NodeIdentifier, "b")))
	assert.Equal(t, 2, b.Len())
}

func TestEmptyBranchMarkers(t *testing.T) {
	for _, kind := range []NodeKind{NodeDistinct, NodeIfNotExists, NodeDefaultValues, NodeNull} {
		m := NewBranch(kind)
		assert.False(t, m.IsLeaf(), kind.String())
		assert.Equal(t, 0, m.Len())
	}
}

func TestChildRange(t *testing.T) {
	b := NewBranch(NodeColumnList, NewLeaf(NodeIdentifier, "a"))

	c, err := b.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "a", c.Value)

	_, err = b.Child(1)
	assert.True(t, errors.Is(err, ErrChildIndex))
	_, err = b.Child(-1)
	assert.True(t, errors.Is(err, ErrChildIndex))
}

func TestEqual(t *testing.T) {
	mk := func() *SqlNode {
		return NewBranch(NodeWhere,
			NewBranch(NodeEq,
				NewLeaf(NodeIdentifier, "id"),
				NewLeaf(NodeIntegerLit, "1"),
			),
		)
	}
	assert.True(t, Equal(mk(), mk()))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(mk(), nil))

	other := mk()
	c, _ := other.Child(0)
	lhs, _ := c.Child(0)
	lhs.Value = "uid"
	assert.False(t, Equal(mk(), other))

	assert.False(t, Equal(NewBranch(NodeWhere), NewBranch(NodeHaving)))
	assert.False(t, Equal(NewBranch(NodeWhere), mk()))
}

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "StatementList", NodeStatementList.String())
	assert.Equal(t, "InnerJoin", NodeInnerJoin.String())
	assert.Equal(t, "NodeKind(0)", NodeKind(0).String())
}
