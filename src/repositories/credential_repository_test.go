package repositories_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"propertylisting/src/domain/entities"
	"propertylisting/src/infra/postgres"
	"propertylisting/src/repositories"
	"propertylisting/src/test_artefacts/test_seeder"
)

var _ = Describe("CredentialRepository", func() {
	var (
		ctx                  context.Context
		readWriteClient      *postgres.ReadWriteClient
		seeder               test_seeder.TestSeeder
		credentialRepository *repositories.CredentialRepository
	)

	BeforeEach(func() {
		ctx = context.Background()
		readWriteClient, seeder = connectTestDatabase(ctx)
		credentialRepository = repositories.NewCredentialRepository(readWriteClient.GetWritePool())
	})

	AfterEach(func() {
		if readWriteClient != nil {
			readWriteClient.Close()
		}
	})

	It("returns nil for an unknown email", func() {
		// ACT
		credential, err := credentialRepository.FindByEmail(ctx, "nobody@example.com")

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(credential).To(BeNil())
	})

	It("inserts once and never overwrites", func() {
		// ARRANGE
		first := entities.Credential{Email: "user@example.com", PasswordHash: "hash-1", CreatedAt: time.Now().UTC()}
		second := entities.Credential{Email: "user@example.com", PasswordHash: "hash-2", CreatedAt: time.Now().UTC()}

		// ACT
		insertedFirst, err := credentialRepository.Insert(ctx, first)
		Expect(err).NotTo(HaveOccurred())
		insertedSecond, err := credentialRepository.Insert(ctx, second)
		Expect(err).NotTo(HaveOccurred())

		// ASSERT
		Expect(insertedFirst).To(BeTrue())
		Expect(insertedSecond).To(BeFalse())
		hash, err := seeder.SelectCredentialHash(ctx, "user@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(hash).To(Equal("hash-1"))
	})
})
