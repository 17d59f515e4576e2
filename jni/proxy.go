package jni

import (
	"crypto/md5"
	"encoding/base64"

	"github.com/dhamidi/jnizero/java"
)

const maxCharsForHashedNativeMethods = 8

// Standard base64 with '$' and '_' so hashes are valid Java identifiers.
var proxyHashEncoding = base64.NewEncoding(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789$_").WithPadding(base64.NoPadding)

// ProxyMethodNames returns the unobfuscated name of a proxy native and its
// short hashed form. Equal inputs always give equal names.
func ProxyMethodNames(class java.Class, methodName string, testOnly bool) (proxyName, hashedProxyName string) {
	proxyName = EscapeClassName(class.FullNameWithSlashes() + "/" + methodName)
	return proxyName, HashedMethodName(proxyName, testOnly)
}

// HashedMethodName derives a short identifier from an md5 of name.
// Test-only methods keep a "_ForTesting" suffix so they stay recognizable.
func HashedMethodName(name string, testOnly bool) string {
	sum := md5.Sum([]byte(name))
	hashed := ("M" + proxyHashEncoding.EncodeToString(sum[:]))[:maxCharsForHashedNativeMethods]
	if testOnly {
		return hashed + "_ForTesting"
	}
	return hashed
}

// GenJNIClass returns the class that declares every proxy native of a
// module. The short form is used when proxy hashing or multiplexing is on.
func GenJNIClass(short bool, moduleName, packagePrefix string) java.Class {
	pkg, name := "org/chromium/base/natives", "GEN_JNI"
	if short {
		pkg, name = "J", "N"
	}
	if moduleName != "" {
		name = moduleName + "_" + name
	}
	c := java.NewClass(pkg + "/" + name)
	if packagePrefix != "" {
		c = c.MakePrefixed(packagePrefix)
	}
	return c
}

// StubName returns the exported C symbol the JVM binds native to.
// genJNIClass is only consulted for proxy natives.
func StubName(native *NativeMethod, class, genJNIClass java.Class, useProxyHash bool) string {
	if native.IsProxy {
		name := native.ProxyName
		if useProxyHash {
			name = native.HashedProxyName
		}
		return "Java_" + EscapeClassName(genJNIClass.FullNameWithSlashes()) + "_" + EscapeClassName(name)
	}
	return "Java_" + EscapeClassName(class.FullNameWithSlashes()) + "_native" + native.CppName
}
