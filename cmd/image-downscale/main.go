// Command image-downscale batch-downscales oversized raster images with
// interactive review and automatic backups.
package main

func main() {
	Execute()
}
