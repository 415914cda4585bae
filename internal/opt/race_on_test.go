//go:build race

package opt

const raceBuild = true
