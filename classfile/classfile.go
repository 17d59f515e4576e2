// Package classfile reads the parts of a JVM class file that describe its
// members: names, descriptors, access flags and constant values. Method
// bodies and every other attribute are skipped.
package classfile

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Fields       []MemberInfo
	Methods      []MemberInfo
}

// ClassName is the slash-separated binary name, e.g. "java/util/Map$Entry".
func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

// MemberInfo is a field or a method.
type MemberInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
}

func (m *MemberInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *MemberInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *MemberInfo) Attribute(cp ConstantPool, name string) *AttributeInfo {
	for i := range m.Attributes {
		if cp.GetUtf8(m.Attributes[i].NameIndex) == name {
			return &m.Attributes[i]
		}
	}
	return nil
}

func (m *MemberInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MemberInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}

// IntConstant returns the value of a field's ConstantValue attribute when it
// points at an integer constant.
func (m *MemberInfo) IntConstant(cp ConstantPool) (int32, bool) {
	attr := m.Attribute(cp, "ConstantValue")
	if attr == nil || len(attr.Info) < 2 {
		return 0, false
	}
	return cp.GetInteger(uint16(attr.Info[0])<<8 | uint16(attr.Info[1]))
}
