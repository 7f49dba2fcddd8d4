package utils

// QualifiedName joins a class name and a member name: ("Math", "add") -> "Math.add".
func QualifiedName(className, member string) string {
	if className == "" {
		return member
	}
	return className + "." + member
}
