package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/version"
)

func main() {
	versionPath := flag.String("file", "VERSION", "path to the VERSION file")
	packageJSON := flag.String("package-json", "package.json", "path to package.json (mirrored when present)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	file := version.File{
		VersionPath:     *versionPath,
		PackageJSONPath: *packageJSON,
	}

	if err := run(file, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(file version.File, args []string) error {
	current, err := file.Read()
	if err != nil {
		return err
	}

	switch args[0] {
	case "current":
		fmt.Println(current)
		return nil

	case "patch":
		return bump(file, current, current.BumpPatch())

	case "minor":
		return bump(file, current, current.BumpMinor())

	case "major":
		return bump(file, current, current.BumpMajor())

	case "set":
		if len(args) < 2 {
			return fmt.Errorf("missing version argument for set")
		}
		next, err := version.Parse(args[1])
		if err != nil {
			return err
		}
		return bump(file, current, next)

	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func bump(file version.File, from, to version.Version) error {
	if err := file.Write(to); err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", from, to)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: version [-file VERSION] [-package-json package.json] current|patch|minor|major|set <version>")
}
