package plugin

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bufbuild/protocompile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	gproto "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseParams(t *testing.T) {
	cases := map[string]struct {
		in       string
		expected *Params
		hasErr   bool
	}{
		"empty": {
			expected: &Params{Format: "c"},
		},
		"all": {
			in:       "format=go,go_package=colors,dllexport=FOO_API",
			expected: &Params{Format: "go", GoPackage: "colors", DLLExport: "FOO_API"},
		},
		"trailing comma": {
			in:       "format=table,",
			expected: &Params{Format: "table"},
		},
		"not key=value": {
			in:     "format",
			hasErr: true,
		},
		"unknown key": {
			in:     "paths=source_relative",
			hasErr: true,
		},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			actual, err := ParseParams(c.in)
			if c.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(c.expected, actual); diff != "" {
				t.Errorf("(-want, +got)\n%s", diff)
			}
		})
	}
}

func newRequest(t *testing.T, param string) *pluginpb.CodeGeneratorRequest {
	t.Helper()

	c := &protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: []string{filepath.Join("..", "idl", "proto", "testdata")},
		}),
	}
	compiled, err := c.Compile(context.Background(), "color.proto")
	require.NoError(t, err)

	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"color.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{protodesc.ToFileDescriptorProto(compiled[0])},
	}
	if param != "" {
		req.Parameter = gproto.String(param)
	}
	return req
}

func run(t *testing.T, req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	t.Helper()

	in, err := gproto.Marshal(req)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), bytes.NewReader(in), &out))

	var res pluginpb.CodeGeneratorResponse
	require.NoError(t, gproto.Unmarshal(out.Bytes(), &res))
	return &res
}

func TestRun(t *testing.T) {
	t.Run("c", func(t *testing.T) {
		res := run(t, newRequest(t, "dllexport=FOO_API"))
		require.Empty(t, res.GetError())
		require.Len(t, res.GetFile(), 2)

		assert.Equal(t, "color.pb-c.h", res.GetFile()[0].GetName())
		assert.Equal(t, "color.pb-c.c", res.GetFile()[1].GetName())
		assert.Contains(t, res.GetFile()[0].GetContent(), "extern FOO_API const ProtobufCEnumDescriptor    foo__bar__color__descriptor;")
	})

	t.Run("name", func(t *testing.T) {
		res := run(t, newRequest(t, "format=name"))
		require.Empty(t, res.GetError())
		require.Len(t, res.GetFile(), 1)
		assert.Equal(t, "foo.bar.Color.BLUE\nfoo.bar.Color.CRIMSON\nfoo.bar.Color.GREEN\nfoo.bar.Color.RED\n", res.GetFile()[0].GetContent())
	})

	t.Run("errors are reported by the response", func(t *testing.T) {
		cases := map[string]*pluginpb.CodeGeneratorRequest{
			"unknown parameter": newRequest(t, "foo=bar"),
			"unknown format":    newRequest(t, "format=pascal"),
			"unknown file": func() *pluginpb.CodeGeneratorRequest {
				req := newRequest(t, "")
				req.FileToGenerate = []string{"missing.proto"}
				return req
			}(),
		}
		for name, req := range cases {
			req := req
			t.Run(name, func(t *testing.T) {
				res := run(t, req)
				assert.NotEmpty(t, res.GetError())
				assert.Empty(t, res.GetFile())
			})
		}
	})

	t.Run("broken request", func(t *testing.T) {
		var out bytes.Buffer
		err := Run(context.Background(), strings.NewReader("\xff\xff"), &out)
		assert.Error(t, err)
	})
}
