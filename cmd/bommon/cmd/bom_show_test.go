package cmd

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/bommon/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBOMJSON(t *testing.T) {
	tr := tree.New(nil)
	root, err := tr.NewComposite("p", "v", "dev", "top")
	require.NoError(t, err)
	lib, err := tr.NewSimple("p", "v", "rtl", "dev", "", "")
	require.NoError(t, err)
	require.NoError(t, tr.AddChild(root, lib))
	require.NoError(t, tr.SetProperty(root, "owner", "me"))
	require.NoError(t, tr.SetProperty(root, "approved", "yes"))

	var buf bytes.Buffer
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	require.NoError(t, enc.Encode(toBOMJSON(tr, root, false, 0)))

	var decoded bomJSON
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "p/v/dev", decoded.Name)
	assert.Equal(t, map[string]string{"owner": "me", "approved": "yes"}, decoded.Properties)
	require.Len(t, decoded.Children, 1)
	assert.Equal(t, "p/v/rtl/dev", decoded.Children[0].Name)
	assert.Empty(t, decoded.Children[0].Properties)
	assert.NotContains(t, buf.String()[bytes.Index(buf.Bytes(), []byte(`"children"`)):], "properties")
}
