package model

// CrawledBlock is the checkpoint written once every address of a block has been queued.
type CrawledBlock struct {
	Height uint64
	Hash   string
}
