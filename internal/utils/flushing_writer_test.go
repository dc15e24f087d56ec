package utils_test

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spellscan/internal/utils"
)

const testFlushingWriterPayloadConstant = "report line\n"

func TestFlushingWriterFlushesBufferedDestinations(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	bufferedWriter := bufio.NewWriterSize(destination, 4096)

	flushingWriter := utils.NewFlushingWriter(bufferedWriter)
	bytesWritten, writeError := flushingWriter.Write([]byte(testFlushingWriterPayloadConstant))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, len(testFlushingWriterPayloadConstant), bytesWritten)
	require.Equal(testInstance, testFlushingWriterPayloadConstant, destination.String())
}

func TestFlushingWriterCountsBytes(testInstance *testing.T) {
	flushingWriter := utils.NewFlushingWriter(&bytes.Buffer{})
	for range 3 {
		_, writeError := flushingWriter.Write([]byte(testFlushingWriterPayloadConstant))
		require.NoError(testInstance, writeError)
	}
	require.Equal(testInstance, int64(3*len(testFlushingWriterPayloadConstant)), flushingWriter.BytesWritten())
	require.NoError(testInstance, flushingWriter.Sync())
}

func TestFlushingWriterSyncsFiles(testInstance *testing.T) {
	reportFile, createError := os.Create(filepath.Join(testInstance.TempDir(), "report.txt"))
	require.NoError(testInstance, createError)
	defer reportFile.Close()

	flushingWriter := utils.NewFlushingWriter(reportFile)
	_, writeError := flushingWriter.Write([]byte(testFlushingWriterPayloadConstant))
	require.NoError(testInstance, writeError)
	require.NoError(testInstance, flushingWriter.Sync())

	content, readError := os.ReadFile(reportFile.Name())
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testFlushingWriterPayloadConstant, string(content))
}

func TestFlushingWriterNilDestination(testInstance *testing.T) {
	var flushingWriter *utils.FlushingWriter
	require.Nil(testInstance, utils.NewFlushingWriter(nil))
	require.Zero(testInstance, flushingWriter.BytesWritten())
	require.NoError(testInstance, flushingWriter.Sync())
}
