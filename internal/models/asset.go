package models

import "time"

// AssetKind identifies the role of a file attached to a content.
type AssetKind string

const (
	AssetKindMaster       AssetKind = "MASTER"
	AssetKindHLSManifest  AssetKind = "HLS_MANIFEST"
	AssetKindHLSSegment   AssetKind = "HLS_SEGMENT"
	AssetKindDASHManifest AssetKind = "DASH_MANIFEST"
	AssetKindDASHSegment  AssetKind = "DASH_SEGMENT"
	AssetKindThumbnail    AssetKind = "THUMBNAIL"
	AssetKindPoster       AssetKind = "POSTER"
	AssetKindWaveform     AssetKind = "WAVEFORM"
	AssetKindSubtitle     AssetKind = "SUBTITLE"
	AssetKindTranscript   AssetKind = "TRANSCRIPT"
	AssetKindPDF          AssetKind = "PDF"
	AssetKindAudioLow     AssetKind = "AUDIO_LOW"
	AssetKindAudioMedium  AssetKind = "AUDIO_MEDIUM"
	AssetKindAudioHigh    AssetKind = "AUDIO_HIGH"
	AssetKindVideoLow     AssetKind = "VIDEO_LOW"
	AssetKindVideoMedium  AssetKind = "VIDEO_MEDIUM"
	AssetKindVideoHigh    AssetKind = "VIDEO_HIGH"
	AssetKindSprite       AssetKind = "SPRITE"
	AssetKindPreview      AssetKind = "PREVIEW"
)

// IsPlayable reports whether the asset kind can satisfy the publish
// precondition: the master file or one of its quality-tier derivatives.
func (k AssetKind) IsPlayable() bool {
	switch k {
	case AssetKindMaster,
		AssetKindAudioLow, AssetKindAudioMedium, AssetKindAudioHigh,
		AssetKindVideoLow, AssetKindVideoMedium, AssetKindVideoHigh:
		return true
	}
	return false
}

// IsStreaming reports whether the asset belongs to a streaming package.
func (k AssetKind) IsStreaming() bool {
	switch k {
	case AssetKindHLSManifest, AssetKindHLSSegment, AssetKindDASHManifest, AssetKindDASHSegment:
		return true
	}
	return false
}

// ProcessingStatus is the state of an asset's processing pipeline.
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "PENDING"
	ProcessingStatusProcessing ProcessingStatus = "PROCESSING"
	ProcessingStatusCompleted  ProcessingStatus = "COMPLETED"
	ProcessingStatusFailed     ProcessingStatus = "FAILED"
	ProcessingStatusCancelled  ProcessingStatus = "CANCELLED"
)

// IsTerminal reports whether the processing status admits no further
// transition. Failed and cancelled assets are replaced, never retried in place.
func (s ProcessingStatus) IsTerminal() bool {
	switch s {
	case ProcessingStatusCompleted, ProcessingStatusFailed, ProcessingStatusCancelled:
		return true
	}
	return false
}

// ContentAsset is a file derived from or attached to a content: the uploaded
// master, streaming renditions, thumbnails, subtitles.
type ContentAsset struct {
	ID               uint64           `db:"id"`
	ContentID        uint64           `db:"content_id"`
	Kind             AssetKind        `db:"kind"`
	URL              string           `db:"url"`
	Format           string           `db:"format"`
	FileSize         int64            `db:"file_size"`
	DurationSeconds  int64            `db:"duration_seconds"`
	Width            *int32           `db:"width"`
	Height           *int32           `db:"height"`
	Bitrate          *int32           `db:"bitrate"`
	QualityLevel     *string          `db:"quality_level"`
	MimeType         *string          `db:"mime_type"`
	Language         *string          `db:"language"`
	IsDefault        bool             `db:"is_default"`
	ProcessingStatus ProcessingStatus `db:"processing_status"`
	ProcessingError  *string          `db:"processing_error"`
	ReplacesAssetID  *uint64          `db:"replaces_asset_id"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}

// IsProcessingComplete reports whether processing finished successfully.
func (a *ContentAsset) IsProcessingComplete() bool {
	return a.ProcessingStatus == ProcessingStatusCompleted
}

// IsProcessingFailed reports whether processing ended in failure.
func (a *ContentAsset) IsProcessingFailed() bool {
	return a.ProcessingStatus == ProcessingStatusFailed
}
