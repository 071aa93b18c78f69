package repository

import (
	"context"
	"errors"

	"compras-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("compra no encontrada")

// compraDoc es el layout persistido. El _id no se guarda redundante dentro
// del documento: se adjunta al leer como Compra.IDDoc.
type compraDoc struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty"`
	UserID string              `bson:"userId"`
	Fecha  string              `bson:"fecha"`
	Items  []model.ItemCarrito `bson:"items"`
	Total  float64             `bson:"total"`
	Estado model.Estado        `bson:"estado"`
}

func (d *compraDoc) toModel() model.Compra {
	return model.Compra{
		IDDoc:  d.ID.Hex(),
		UserID: d.UserID,
		Fecha:  d.Fecha,
		Items:  d.Items,
		Total:  d.Total,
		Estado: d.Estado,
	}
}

// Mongo implementation
type MongoCompraRepository struct {
	col *mongo.Collection
}

func NewMongoCompraRepository(db *mongo.Database) *MongoCompraRepository {
	return &MongoCompraRepository{col: db.Collection("compras")}
}

// Create inserta la compra y devuelve el id asignado por el store.
func (m *MongoCompraRepository) Create(ctx context.Context, c *model.Compra) (string, error) {
	doc := compraDoc{
		UserID: c.UserID,
		Fecha:  c.Fecha,
		Items:  c.Items,
		Total:  c.Total,
		Estado: c.Estado,
	}
	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("id de documento inesperado")
	}
	return oid.Hex(), nil
}

func (m *MongoCompraRepository) FindByID(ctx context.Context, id string) (*model.Compra, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Un id que no es un ObjectID válido nunca va a matchear un documento.
		return nil, ErrNotFound
	}
	var doc compraDoc
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	compra := doc.toModel()
	return &compra, nil
}

func (m *MongoCompraRepository) FindByUserID(ctx context.Context, userID string) ([]model.Compra, error) {
	return m.find(ctx, bson.M{"userId": userID})
}

// FindByFecha matchea exactamente el string de fecha; el que llama debe
// normalizar los separadores a "/" antes de consultar.
func (m *MongoCompraRepository) FindByFecha(ctx context.Context, fecha string) ([]model.Compra, error) {
	return m.find(ctx, bson.M{"fecha": fecha})
}

func (m *MongoCompraRepository) FindAll(ctx context.Context) ([]model.Compra, error) {
	return m.find(ctx, bson.M{})
}

func (m *MongoCompraRepository) find(ctx context.Context, filter bson.M) ([]model.Compra, error) {
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.Compra
	for cur.Next(ctx) {
		var doc compraDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toModel())
	}
	return out, cur.Err()
}

// UpdateEstado mergea únicamente el campo estado, dejando el resto del
// documento intacto. Verifica existencia antes de escribir; dos escrituras
// concurrentes sobre el mismo documento quedan en last-write-wins.
func (m *MongoCompraRepository) UpdateEstado(ctx context.Context, id string, estado model.Estado) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	// PASO 1: verificar que el documento exista
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// PASO 2: actualizar solo el estado
	_, err = m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"estado": estado},
	})
	return err
}
