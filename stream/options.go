package stream

import (
	"github.com/arloliu/gwf/compress"
	"github.com/arloliu/gwf/endian"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/internal/options"
)

type writerConfig struct {
	compression format.CompressionType
	level       int
	order       endian.EndianEngine
}

func defaultWriterConfig() *writerConfig {
	return &writerConfig{
		compression: format.CompressionGzip,
		level:       format.DefaultCompressionLevel,
		order:       endian.GetNativeEngine(),
	}
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*writerConfig]

// WithCompression selects the codec and level used for vector data. The
// default is gzip at level 6.
func WithCompression(ct format.CompressionType, level int) WriterOption {
	return options.New(func(c *writerConfig) error {
		if _, err := compress.CreateCodec(ct, level); err != nil {
			return err
		}
		c.compression = ct
		c.level = level

		return nil
	})
}

// WithByteOrder sets the byte order of the written file. The default is the
// host byte order.
func WithByteOrder(order endian.EndianEngine) WriterOption {
	return options.NoError(func(c *writerConfig) {
		if order != nil {
			c.order = order
		}
	})
}

type readerConfig struct {
	verifyChecksum bool
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*readerConfig]

// WithChecksumVerification makes the Reader check the file checksum when it is
// created. This reads the whole file once.
func WithChecksumVerification() ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.verifyChecksum = true
	})
}
