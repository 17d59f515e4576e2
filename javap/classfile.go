package javap

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/jnizero/classfile"
	"github.com/dhamidi/jnizero/java"
	"github.com/dhamidi/jnizero/jni"
)

// ReadClass builds bindings straight from the bytes of a class file. It
// selects what javap prints by default: every non-private method, public
// constructors and public static final int constants, in class file order.
func ReadClass(data []byte, opts jni.Options) (*jni.Bindings, error) {
	cf, err := classfile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	cp := cf.ConstantPool

	class := java.NewClass(cf.ClassName())
	if class.IsZero() {
		return nil, ErrNoClass
	}
	b := &jni.Bindings{
		Class:     class,
		Resolver:  java.NewResolver(class),
		Namespace: opts.Namespace,
	}
	if b.Namespace == "" {
		b.Namespace = "JNI_" + class.Name()
	}

	var constructors []*jni.CalledByNative
	for i := range cf.Methods {
		m := &cf.Methods[i]
		if m.AccessFlags.IsPrivate() || m.IsStaticInitializer(cp) {
			continue
		}
		isConstructor := m.IsConstructor(cp)
		if isConstructor && !m.AccessFlags.IsPublic() {
			continue
		}

		descriptor := m.Descriptor(cp)
		sig, err := java.ParseMethodDescriptor(descriptor)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", class, m.Name(cp), err)
		}
		spec := jni.CalledByNativeSpec{
			Name:        m.Name(cp),
			ReturnType:  sig.ReturnType,
			Params:      sig.Params,
			Static:      m.AccessFlags.IsStatic(),
			SystemClass: true,
			Unchecked:   opts.UncheckedExceptions,
			Descriptor:  descriptor,
		}
		if isConstructor {
			spec.Name = jni.ConstructorName
			spec.IsConstructor = true
			spec.ReturnType = java.ClassType(class, 0)
		}
		c, err := jni.NewCalledByNative(spec)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", class, m.Name(cp), err)
		}
		if isConstructor {
			constructors = append(constructors, c)
		} else {
			b.CalledByNatives = append(b.CalledByNatives, c)
		}
	}
	b.CalledByNatives = append(b.CalledByNatives, constructors...)
	jni.MangleCalledByNatives(b.CalledByNatives)

	for i := range cf.Fields {
		f := &cf.Fields[i]
		flags := f.AccessFlags
		if !flags.IsPublic() || !flags.IsStatic() || !flags.IsFinal() || f.Descriptor(cp) != "I" {
			continue
		}
		value, ok := f.IntConstant(cp)
		if !ok {
			log.Debugf("no value found for constant %s", f.Name(cp))
			continue
		}
		b.ConstantFields = append(b.ConstantFields, jni.ConstantField{Name: f.Name(cp), Value: int64(value)})
	}

	log.Debugf("class file %s: %d called by natives, %d constants",
		class, len(b.CalledByNatives), len(b.ConstantFields))
	return b, nil
}

// ReadClassFile reads and converts the class file at path.
func ReadClassFile(path string, opts jni.Options) (*jni.Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	b, err := ReadClass(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b.Filename = path
	return b, nil
}
