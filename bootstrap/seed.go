package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"iph/core"
	"iph/storage"
)

// SeedCatalogs populates the reference catalogs on an empty database. The
// event type catalog doubles as the sentinel: if it has rows, seeding
// already ran and nothing is touched, so restarts are safe.
//
// Seed order matters: the rule table in core keys on the ids the first
// four event types and the two motive categories receive here.
func SeedCatalogs(ctx context.Context, catalogs *storage.SQLiteCatalogStorage, logger *zap.SugaredLogger) error {
	count, err := catalogs.CountEventTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog state: %w", err)
	}
	if count > 0 {
		logger.Debug("Catalogs already seeded")
		return nil
	}

	logger.Info("Seeding reference catalogs")

	for _, desc := range []string{"Fiscalía", "Denuncia", "Juzgado Cívico", "Conocimiento"} {
		et := core.EventType{Description: desc}
		if err := catalogs.CreateEventType(ctx, &et); err != nil {
			return err
		}
	}

	for i := 1; i <= 9; i++ {
		region := core.Region{Description: fmt.Sprintf("Región %d", i)}
		if err := catalogs.CreateRegion(ctx, &region); err != nil {
			return err
		}
	}

	for _, name := range []string{"Delito", "Falta Administrativa"} {
		category := core.MotiveCategory{Name: name}
		if err := catalogs.CreateMotiveCategory(ctx, &category); err != nil {
			return err
		}
	}

	motives := []core.Motive{
		{Text: "Posesión de narcóticos", CategoryID: core.MotiveCategoryOffense},
		{Text: "Robo con violencia", CategoryID: core.MotiveCategoryOffense},
		{Text: "Daños a terceros", CategoryID: core.MotiveCategoryInfraction},
		{Text: "Escándalo en vía pública", CategoryID: core.MotiveCategoryInfraction},
		{Text: "Falta de documentación", CategoryID: core.MotiveCategoryInfraction},
	}
	for _, motive := range motives {
		m := motive
		if err := catalogs.CreateMotive(ctx, &m); err != nil {
			return err
		}
	}

	for _, desc := range []string{"Marihuana", "Cocaína", "Heroína", "Metanfetaminas", "Fentanilo"} {
		drug := core.Drug{Description: desc}
		if err := catalogs.CreateDrug(ctx, &drug); err != nil {
			return err
		}
	}

	weapons := []core.Weapon{
		{Kind: "Arma de fuego", Name: "Pistola calibre .380"},
		{Kind: "Arma de fuego", Name: "Pistola calibre 9mm"},
		{Kind: "Arma de fuego", Name: "Pistola calibre .45"},
		{Kind: "Arma de fuego", Name: "Revólver calibre .38"},
		{Kind: "Arma de fuego", Name: "Revólver calibre .357 Magnum"},
		{Kind: "Arma de fuego", Name: "Escopeta calibre 12"},
		{Kind: "Arma de fuego", Name: "Escopeta calibre 20"},
		{Kind: "Arma de fuego", Name: "Rifle calibre .22"},
		{Kind: "Arma de fuego", Name: "Rifle de asalto AK-47"},
		{Kind: "Arma de fuego", Name: "Rifle AR-15"},
		{Kind: "Arma de fuego", Name: "Subametralladora"},
		{Kind: "Arma blanca", Name: "Cuchillo"},
		{Kind: "Arma blanca", Name: "Navaja"},
		{Kind: "Arma blanca", Name: "Machete"},
		{Kind: "Arma blanca", Name: "Puñal"},
		{Kind: "Contundente", Name: "Bat de béisbol"},
		{Kind: "Contundente", Name: "Tubo de metal"},
		{Kind: "Contundente", Name: "Martillo"},
	}
	for _, weapon := range weapons {
		w := weapon
		if err := catalogs.CreateWeapon(ctx, &w); err != nil {
			return err
		}
	}

	logger.Info("Catalogs seeded")
	return nil
}
