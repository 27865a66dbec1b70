package main

import (
	"flag"
	"fmt"
	"os"

	"texmatte/internal/sample"
	"texmatte/internal/texture"
)

func main() {
	padding := flag.Float64("padding", 0.05, "Corner inset as a fraction of the image size")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: samples [-padding f] <image>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	tex, err := texture.LoadTexture(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %dx%d\n", path, tex.Width, tex.Height)

	corners := sample.PickCorners(tex, float32(*padding))
	kept := sample.DropOutlier(corners)

	fmt.Println("Corners:")
	for i, p := range corners {
		fmt.Printf("  [%d] %s\n", i, p)
	}

	fmt.Println("Background samples:")
	for _, p := range kept {
		fmt.Printf("  %s  similarity=%.1f\n", p, p.Similarity)
	}
	for _, c := range corners {
		found := false
		for _, k := range kept {
			if c.Equal(k) {
				found = true
				break
			}
		}
		if !found {
			fmt.Printf("Dropped: %s\n", c)
			break
		}
	}
}
