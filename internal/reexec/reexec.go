// This file originates from Docker/Moby,
// https://github.com/moby/moby/blob/master/pkg/reexec/reexec.go
// Licensed under Apache License 2.0: https://github.com/moby/moby/blob/master/LICENSE
// Copyright 2013-2018 Docker, Inc.
//
// Package reexec facilitates the busybox style reexec of a binary. Handlers can
// be registered with a name and the base name of argv 0 of the exec of the
// binary will be used to find and execute custom init paths.
//
// The compiler tests use it to run the test binary itself as a stand-in solc:
// a link named "solc" pointing at the test executable is put on PATH, and the
// registered handler takes over when the binary is started under that name.
package reexec

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var registeredInitializers = make(map[string]func())

// Register adds an initialization func under the specified name
// Register 在指定名称下注册一个初始化函数。
func Register(name string, initializer func()) {
	if _, exists := registeredInitializers[name]; exists {
		panic(fmt.Sprintf("reexec func already registered under name %q", name))
	}
	registeredInitializers[name] = initializer
}

// Init is called as the first part of the exec process and returns true if an
// initialization function was called.
func Init() bool {
	if initializer, ok := registeredInitializers[invokedAs()]; ok {
		initializer()
		return true
	}
	return false
}

// invokedAs returns the name the binary was started under, without directory
// or .exe extension.
func invokedAs() string {
	return strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
}

// Self returns the path to the current process's binary.
func Self() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	name := os.Args[0]
	if filepath.Base(name) == name {
		if lp, err := exec.LookPath(name); err == nil {
			return lp
		}
	}
	// handle conversion of relative paths to absolute
	if absName, err := filepath.Abs(name); err == nil {
		return absName
	}
	return name
}

// Install makes the current binary startable as name by creating a symbolic
// link to it in dir. It returns the path of the link.
// Install 在 dir 中创建指向当前二进制文件的符号链接，使其能以 name 启动。
func Install(dir, name string) (string, error) {
	link := filepath.Join(dir, name)
	if err := os.Symlink(Self(), link); err != nil {
		return "", err
	}
	return link, nil
}
