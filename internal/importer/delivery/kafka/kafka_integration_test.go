//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkaContainer "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/asyncopatedsoul/health-protocol/config"
	kafkaCfg "github.com/asyncopatedsoul/health-protocol/config/kafka"
	activityUC "github.com/asyncopatedsoul/health-protocol/internal/activity/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/importer/delivery/kafka"
	importerUC "github.com/asyncopatedsoul/health-protocol/internal/importer/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/memory"
	pkgKafka "github.com/asyncopatedsoul/health-protocol/pkg/kafka"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

func TestNoteSavedRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	kafkaC, err := kafkaContainer.RunContainer(ctx, testcontainers.WithEnv(map[string]string{
		"KAFKA_AUTO_CREATE_TOPICS_ENABLE": "true",
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kafkaC.Terminate(context.Background()) })

	brokers, err := kafkaC.Brokers(ctx)
	require.NoError(t, err)

	cfg := config.KafkaConfig{
		Enabled:      true,
		Brokers:      brokers,
		GroupID:      "importer-integration",
		NoteTopic:    "journal.notes",
		EventTopic:   "journal.events",
		PlannedTopic: "journal.planned",
	}

	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err)
	defer conn.Close()
	for _, topic := range []string{cfg.NoteTopic, cfg.EventTopic} {
		require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}))
	}

	producer, err := kafkaCfg.ConnectProducer(cfg)
	require.NoError(t, err)
	defer producer.Close()
	publisher := eventbus.NewKafka(producer, kafkaCfg.Topics(cfg))

	store := memory.New()
	l := log.NewNop()
	resolver := activityUC.New(store, nil, l)
	uc := importerUC.New(l, store, store, store, store, resolver, publisher, importer.DefaultConfig())

	reader, err := kafkaCfg.NewNoteReader(cfg)
	require.NoError(t, err)
	defer reader.Close()

	consumerCtx, stop := context.WithCancel(ctx)
	defer stop()
	proc := pkgKafka.NewProcessor(reader, kafka.New(l, uc), l)
	go func() { _ = proc.Run(consumerCtx) }()

	created, err := uc.CreateNote(ctx, importer.CreateNoteInput{
		UserID:  "u1",
		Content: "2025-04-17\n\nGoblet Squat\n20kg x 10\n\nFarmer Carry\n3 x 40",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		events, err := store.ListEventsForUser(ctx, repository.ListEventsOptions{UserID: "u1", Type: model.EventTypeActivity})
		return err == nil && len(events) == 2
	}, 60*time.Second, 500*time.Millisecond)

	note, err := store.GetNote(ctx, created.Note.ID)
	require.NoError(t, err)
	require.NotNil(t, note.ActivityTimestampMs)
}
