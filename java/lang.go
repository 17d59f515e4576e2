package java

// javaLangClasses holds the public simple names of java.lang. They are
// implicitly imported and win over same-package classes of the same name.
var javaLangClasses = map[string]struct{}{
	"AbstractMethodError":             {},
	"Appendable":                      {},
	"ArithmeticException":             {},
	"ArrayIndexOutOfBoundsException":  {},
	"ArrayStoreException":             {},
	"AssertionError":                  {},
	"AutoCloseable":                   {},
	"Boolean":                         {},
	"BootstrapMethodError":            {},
	"Byte":                            {},
	"Character":                       {},
	"Character$Subset":                {},
	"Character$UnicodeBlock":          {},
	"CharSequence":                    {},
	"Class":                           {},
	"ClassCastException":              {},
	"ClassCircularityError":           {},
	"ClassFormatError":                {},
	"ClassLoader":                     {},
	"ClassNotFoundException":          {},
	"ClassValue":                      {},
	"Cloneable":                       {},
	"CloneNotSupportedException":      {},
	"Comparable":                      {},
	"Compiler":                        {},
	"Deprecated":                      {},
	"Double":                          {},
	"Enum":                            {},
	"EnumConstantNotPresentException": {},
	"Error":                           {},
	"Exception":                       {},
	"ExceptionInInitializerError":     {},
	"Float":                           {},
	"FunctionalInterface":             {},
	"IllegalAccessError":              {},
	"IllegalAccessException":          {},
	"IllegalArgumentException":        {},
	"IllegalMonitorStateException":    {},
	"IllegalStateException":           {},
	"IllegalThreadStateException":     {},
	"IncompatibleClassChangeError":    {},
	"IndexOutOfBoundsException":       {},
	"InheritableThreadLocal":          {},
	"InstantiationError":              {},
	"InstantiationException":          {},
	"Integer":                         {},
	"InternalError":                   {},
	"InterruptedException":            {},
	"Iterable":                        {},
	"LinkageError":                    {},
	"Long":                            {},
	"Math":                            {},
	"NegativeArraySizeException":      {},
	"NoClassDefFoundError":            {},
	"NoSuchFieldError":                {},
	"NoSuchFieldException":            {},
	"NoSuchMethodError":               {},
	"NoSuchMethodException":           {},
	"NullPointerException":            {},
	"Number":                          {},
	"NumberFormatException":           {},
	"Object":                          {},
	"OutOfMemoryError":                {},
	"Override":                        {},
	"Package":                         {},
	"Process":                         {},
	"ProcessBuilder":                  {},
	"Readable":                        {},
	"ReflectiveOperationException":    {},
	"Runnable":                        {},
	"Runtime":                         {},
	"RuntimeException":                {},
	"RuntimePermission":               {},
	"SafeVarargs":                     {},
	"SecurityException":               {},
	"SecurityManager":                 {},
	"Short":                           {},
	"StackOverflowError":              {},
	"StackTraceElement":               {},
	"StrictMath":                      {},
	"String":                          {},
	"StringBuffer":                    {},
	"StringBuilder":                   {},
	"StringIndexOutOfBoundsException": {},
	"SuppressWarnings":                {},
	"System":                          {},
	"Thread":                          {},
	"Thread$State":                    {},
	"Thread$UncaughtExceptionHandler": {},
	"ThreadDeath":                     {},
	"ThreadGroup":                     {},
	"ThreadLocal":                     {},
	"Throwable":                       {},
	"TypeNotPresentException":         {},
	"UnknownError":                    {},
	"UnsatisfiedLinkError":            {},
	"UnsupportedClassVersionError":    {},
	"UnsupportedOperationException":   {},
	"VerifyError":                     {},
	"VirtualMachineError":             {},
	"Void":                            {},
}

func isJavaLangClass(name string) bool {
	_, ok := javaLangClasses[name]
	return ok
}
