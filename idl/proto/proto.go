// Package proto loads idl.File from Protocol Buffers sources.
package proto

import (
	"context"

	"github.com/bufbuild/protocompile"
	"github.com/jhump/protoreflect/desc"
	"github.com/ktr0731/cenum/idl"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/pluginpb"
)

// LoadFiles receives proto file names and import paths like protoc's options.
// Then, LoadFiles compiles these files and converts enums declared in each of them.
// Enums of imported files are not returned.
func LoadFiles(ctx context.Context, importPaths []string, fnames []string) ([]*idl.File, error) {
	c := &protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: importPaths,
		}),
	}
	compiled, err := c.Compile(ctx, fnames...)
	if err != nil {
		return nil, errors.Wrap(err, "proto: failed to compile proto files")
	}

	files := make([]*idl.File, len(compiled))
	for i, fd := range compiled {
		files[i] = fromFileDescriptor(fd)
	}
	return files, nil
}

func fromFileDescriptor(fd protoreflect.FileDescriptor) *idl.File {
	f := &idl.File{
		Name:    fd.Path(),
		Package: string(fd.Package()),
	}
	msgs := fd.Messages()
	for i := 0; i < msgs.Len(); i++ {
		f.Enums = appendMessageEnums(f.Enums, f.Package, msgs.Get(i))
	}
	f.Enums = appendEnums(f.Enums, f.Package, fd.Enums())
	return f
}

// appendMessageEnums appends enums of nested messages first, then enums of md itself.
func appendMessageEnums(enums []*idl.Enum, pkg string, md protoreflect.MessageDescriptor) []*idl.Enum {
	nested := md.Messages()
	for i := 0; i < nested.Len(); i++ {
		enums = appendMessageEnums(enums, pkg, nested.Get(i))
	}
	return appendEnums(enums, pkg, md.Enums())
}

func appendEnums(enums []*idl.Enum, pkg string, eds protoreflect.EnumDescriptors) []*idl.Enum {
	for i := 0; i < eds.Len(); i++ {
		ed := eds.Get(i)
		e := &idl.Enum{
			FullName: string(ed.FullName()),
			Name:     string(ed.Name()),
			Package:  pkg,
		}
		vals := ed.Values()
		e.Values = make([]*idl.Value, vals.Len())
		for j := 0; j < vals.Len(); j++ {
			v := vals.Get(j)
			e.Values[j] = &idl.Value{Name: string(v.Name()), Number: int32(v.Number())}
		}
		enums = append(enums, e)
	}
	return enums
}

// FromCodeGeneratorRequest converts enums of all files that protoc requested to generate.
// The order of the returned files follows req.FileToGenerate.
func FromCodeGeneratorRequest(req *pluginpb.CodeGeneratorRequest) ([]*idl.File, error) {
	fds, err := desc.CreateFileDescriptors(req.GetProtoFile())
	if err != nil {
		return nil, errors.Wrap(err, "proto: failed to link file descriptors")
	}

	files := make([]*idl.File, 0, len(req.GetFileToGenerate()))
	for _, name := range req.GetFileToGenerate() {
		fd, ok := fds[name]
		if !ok {
			return nil, errors.Errorf("proto: file '%s' is requested to generate, but not provided", name)
		}
		files = append(files, fromDesc(fd))
	}
	return files, nil
}

func fromDesc(fd *desc.FileDescriptor) *idl.File {
	f := &idl.File{
		Name:    fd.GetName(),
		Package: fd.GetPackage(),
	}
	for _, md := range fd.GetMessageTypes() {
		f.Enums = appendDescMessageEnums(f.Enums, f.Package, md)
	}
	f.Enums = appendDescEnums(f.Enums, f.Package, fd.GetEnumTypes())
	return f
}

func appendDescMessageEnums(enums []*idl.Enum, pkg string, md *desc.MessageDescriptor) []*idl.Enum {
	for _, nested := range md.GetNestedMessageTypes() {
		enums = appendDescMessageEnums(enums, pkg, nested)
	}
	return appendDescEnums(enums, pkg, md.GetNestedEnumTypes())
}

func appendDescEnums(enums []*idl.Enum, pkg string, eds []*desc.EnumDescriptor) []*idl.Enum {
	for _, ed := range eds {
		e := &idl.Enum{
			FullName: ed.GetFullyQualifiedName(),
			Name:     ed.GetName(),
			Package:  pkg,
		}
		for _, v := range ed.GetValues() {
			e.Values = append(e.Values, &idl.Value{Name: v.GetName(), Number: v.GetNumber()})
		}
		enums = append(enums, e)
	}
	return enums
}
