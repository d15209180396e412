//go:build !unix

package shell

func initSignals() {}
