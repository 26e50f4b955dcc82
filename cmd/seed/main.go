package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/config"
	"github.com/stemsi/registry/internal/logger"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/repository"
	"github.com/stemsi/registry/internal/service"
	"github.com/stemsi/registry/internal/validator"
)

const (
	seedClassCode       = "1A-M"
	seedTeacherDocument = "T-0001"
)

var names = [][2]string{
	{"Ana", "Souza"}, {"Bruno", "Lima"}, {"Carla", "Mendes"}, {"Diego", "Rocha"},
	{"Elisa", "Costa"}, {"Fabio", "Alves"}, {"Gabriela", "Nunes"}, {"Heitor", "Ramos"},
	{"Isabela", "Pires"}, {"Joao", "Teixeira"}, {"Karina", "Melo"}, {"Lucas", "Barros"},
}

func main() {
	students := flag.Int("students", 10, "number of students to seed")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	stores, err := repository.Open(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record stores")
	}
	services := service.NewServices(stores, nil)
	ctx := log.WithContext(context.Background())

	fmt.Printf("=== Seeding %s ===\n", cfg.DataDir)

	teacher := seedTeacher(ctx, services)
	class := seedClass(ctx, services, teacher.ID)
	parents := seedParents(ctx, services)

	now := time.Now().UTC()
	successCount := 0
	for i := 0; i < *students; i++ {
		name := names[i%len(names)]
		document := fmt.Sprintf("S-%04d", i+1)
		if len(services.Students.ListBy(ctx, model.StudentDocument, document)) > 0 {
			fmt.Printf("Student %s already exists, skipping\n", document)
			continue
		}

		_, err := services.Students.Create(ctx, model.Student{
			FirstName: name[0],
			Surname:   name[1],
			Document:  document,
			BirthDate: now.AddDate(-7-i%5, -i%12, 0).Format(time.RFC3339),
			BloodType: model.BloodTypes[i%len(model.BloodTypes)],
			Class:     class.ID,
			Parents:   []string{parents[i%len(parents)].ID},
			StartDate: now.Format(time.RFC3339),
		})
		if err != nil {
			log.Error().Err(err).Str("document", document).Msg("Failed to create student")
			continue
		}
		successCount++
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, *students)
}

func seedTeacher(ctx context.Context, services *service.Services) *model.Teacher {
	if existing := services.Teachers.ListBy(ctx, model.TeacherDocument, seedTeacherDocument); len(existing) > 0 {
		fmt.Printf("Found existing teacher with ID: %s\n", existing[0].ID)
		return existing[0]
	}

	teacher, err := services.Teachers.Create(ctx, model.Teacher{
		FirstName:  "Marta",
		Surname:    "Oliveira",
		Phone:      "+55 11 90000-0001",
		Email:      "marta.oliveira@school.test",
		Document:   seedTeacherDocument,
		HiringDate: time.Now().UTC().AddDate(-3, 0, 0).Format(time.RFC3339),
		Major:      "Mathematics",
		Salary:     4200,
	})
	if err != nil {
		fatal(ctx, err, "Failed to create teacher")
	}
	fmt.Printf("Created teacher with ID: %s\n", teacher.ID)
	return teacher
}

func seedClass(ctx context.Context, services *service.Services, teacherID string) *model.Class {
	if existing := services.Classes.ListBy(ctx, model.ClassCode, seedClassCode); len(existing) > 0 {
		fmt.Printf("Found existing class %s with ID: %s\n", seedClassCode, existing[0].ID)
		return existing[0]
	}

	class, err := services.Classes.Create(ctx, model.Class{Code: seedClassCode, Teacher: &teacherID})
	if err != nil {
		fatal(ctx, err, "Failed to create class")
	}
	fmt.Printf("Created class %s with ID: %s\n", seedClassCode, class.ID)
	return class
}

func seedParents(ctx context.Context, services *service.Services) []*model.Parent {
	parents := make([]*model.Parent, 0, 2)
	for i, name := range [][2]string{{"Paulo", "Souza"}, {"Renata", "Lima"}} {
		document := fmt.Sprintf("P-%04d", i+1)
		if existing := services.Parents.ListBy(ctx, model.ParentDocument, document); len(existing) > 0 {
			parents = append(parents, existing[0])
			continue
		}

		parent, err := services.Parents.Create(ctx, model.Parent{
			FirstName: name[0],
			Surname:   name[1],
			Phones:    []string{fmt.Sprintf("+55 11 90000-%04d", 100+i)},
			Emails:    []string{fmt.Sprintf("parent%d@family.test", i+1)},
			Document:  document,
			Address: []model.Address{{
				Line1:   fmt.Sprintf("Rua das Flores, %d", 10+i),
				City:    "Sao Paulo",
				Country: "BR",
				ZipCode: "01000-000",
			}},
		})
		if err != nil {
			fatal(ctx, err, "Failed to create parent")
		}
		parents = append(parents, parent)
	}
	return parents
}

func fatal(ctx context.Context, err error, msg string) {
	zerolog.Ctx(ctx).Fatal().Err(err).Msg(msg)
}
