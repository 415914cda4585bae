//go:build !race

package opt

const raceBuild = false
