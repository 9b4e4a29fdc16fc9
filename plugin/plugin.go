// Package plugin runs cenum as a protoc plugin.
//
// Parameters are passed by protoc's --cenum_opt like:
//
//	protoc --cenum_out=. --cenum_opt=format=c,dllexport=FOO_API foo.proto
package plugin

import (
	"context"
	"io"
	"strings"

	"github.com/ktr0731/cenum/gen"
	"github.com/ktr0731/cenum/idl/proto"
	"github.com/ktr0731/cenum/present"
	"github.com/pkg/errors"
	gproto "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// Params is the parsed parameter of a CodeGeneratorRequest.
type Params struct {
	Format    string
	DLLExport string
	GoPackage string
}

// ParseParams parses s formatted as "key=value,...". Unknown keys are errors.
func ParseParams(s string) (*Params, error) {
	p := &Params{Format: present.FormatC}
	if s == "" {
		return p, nil
	}
	for _, kv := range strings.Split(s, ",") {
		if kv == "" {
			continue
		}
		sp := strings.SplitN(kv, "=", 2)
		if len(sp) != 2 {
			return nil, errors.Errorf("parameter '%s' must be formatted as key=value", kv)
		}
		switch k, v := sp[0], sp[1]; k {
		case "format":
			p.Format = v
		case "dllexport":
			p.DLLExport = v
		case "go_package":
			p.GoPackage = v
		default:
			return nil, errors.Errorf("unknown parameter '%s'", k)
		}
	}
	return p, nil
}

// Run reads a CodeGeneratorRequest from r and writes a CodeGeneratorResponse to w.
// Failures of the generation are reported by the response. The returned error
// means that protoc can't receive the response.
func Run(ctx context.Context, r io.Reader, w io.Writer) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read the request")
	}
	var req pluginpb.CodeGeneratorRequest
	if err := gproto.Unmarshal(in, &req); err != nil {
		return errors.Wrap(err, "failed to unmarshal the request")
	}

	res := generate(ctx, &req)

	out, err := gproto.Marshal(res)
	if err != nil {
		return errors.Wrap(err, "failed to marshal the response")
	}
	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "failed to write the response")
	}
	return nil
}

func generate(ctx context.Context, req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	outs, err := func() ([]*present.Output, error) {
		params, err := ParseParams(req.GetParameter())
		if err != nil {
			return nil, err
		}
		files, err := proto.FromCodeGeneratorRequest(req)
		if err != nil {
			return nil, err
		}
		p, err := gen.NewPresenter(params.Format, gen.PresenterOptions{
			DLLExport: params.DLLExport,
			GoPackage: params.GoPackage,
		})
		if err != nil {
			return nil, err
		}
		return gen.New(p).Generate(ctx, files)
	}()
	if err != nil {
		return &pluginpb.CodeGeneratorResponse{Error: gproto.String(err.Error())}
	}

	res := &pluginpb.CodeGeneratorResponse{
		File: make([]*pluginpb.CodeGeneratorResponse_File, len(outs)),
	}
	for i, o := range outs {
		res.File[i] = &pluginpb.CodeGeneratorResponse_File{
			Name:    gproto.String(o.Name),
			Content: gproto.String(string(o.Content)),
		}
	}
	return res
}
