/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tincture/classify"
)

func TestClassify_Default(t *testing.T) {
	c := classify.New()

	tests := []struct {
		path []string
		want classify.Class
	}{
		{[]string{"Blue", "500"}, classify.Primitive},
		{[]string{"slate", "50"}, classify.Primitive},
		{[]string{"Primary", "600"}, classify.Primitive},
		{[]string{"White"}, classify.Primitive},
		{[]string{"Surface"}, classify.Semantic},
		{[]string{"Border", "default"}, classify.Semantic},
		{[]string{"Spacing", "spacing-xs"}, classify.Semantic},
		{[]string{"Bluish", "500"}, classify.Semantic},
		{nil, classify.Suppressed},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.path), "path %v", tt.path)
		})
	}
}

func TestClassify_SuppressesBareWhiteBlack(t *testing.T) {
	c := classify.New("blue", "slate")

	assert.Equal(t, classify.Suppressed, c.Classify([]string{"White"}))
	assert.Equal(t, classify.Suppressed, c.Classify([]string{"black"}))
	assert.Equal(t, classify.Semantic, c.Classify([]string{"White", "alpha-50"}))
	assert.Equal(t, classify.Primitive, c.Classify([]string{"Blue", "500"}))
}

func TestClassify_MutuallyExclusive(t *testing.T) {
	paths := [][]string{
		{"Blue", "500"}, {"White"}, {"Black"}, {"Surface"},
		{"Text", "muted"}, {"Radius", "radius-md"}, {"RED", "100"},
	}
	for _, groups := range [][]string{nil, {"blue"}, {"surface", "white"}} {
		c := classify.New(groups...)
		for _, p := range paths {
			assert.False(t, c.IsPrimitive(p) && c.IsSemantic(p), "groups %v path %v", groups, p)
			class := c.Classify(p)
			assert.Equal(t, class == classify.Primitive, c.IsPrimitive(p))
			assert.Equal(t, class == classify.Semantic, c.IsSemantic(p))
		}
	}
}

func TestParseClass(t *testing.T) {
	for _, class := range []classify.Class{classify.Semantic, classify.Primitive, classify.Suppressed} {
		got, err := classify.ParseClass(class.String())
		require.NoError(t, err)
		assert.Equal(t, class, got)
	}
	_, err := classify.ParseClass("palette")
	assert.Error(t, err)
}
