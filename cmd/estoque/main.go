// Command estoque es el cliente de terminal de la API de estoque: listar,
// filtrar, crear, ajustar y borrar items, y consultar el log de transacciones.
//
// La URL del servidor se toma de -server o de la variable ESTOQUE_API_URL
// (default http://localhost:8080).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/estoqueapp/estoque-api/pkg/client"
)

const defaultServer = "http://localhost:8080"

func main() {
	server := os.Getenv("ESTOQUE_API_URL")
	if server == "" {
		server = defaultServer
	}

	flag.Usage = usage
	serverFlag := flag.String("server", server, "URL base de la API")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*serverFlag)
	var err error
	switch args[0] {
	case "items":
		err = cmdItems(ctx, c)
	case "item":
		err = cmdItem(ctx, c, args[1:])
	case "filter":
		err = cmdFilter(ctx, c, args[1:])
	case "add":
		err = cmdAdd(ctx, c, args[1:])
	case "adjust":
		err = cmdAdjust(ctx, c, args[1:])
	case "delete":
		err = cmdDelete(ctx, c, args[1:])
	case "transactions":
		err = cmdTransactions(ctx, c, args[1:])
	case "brands":
		err = cmdBrands(ctx, c)
	case "add-brand":
		err = cmdAddBrand(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "subcomando desconocido: %s\n\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `uso: estoque [-server URL] <subcomando>

subcomandos:
  items                          listar todos los items
  item <id>                      detalle de un item
  filter [-d texto] [-b m1,m2]   filtrar por descripción y/o marcas
  add -brand M -desc D [-q N]    crear item con cantidad inicial
  adjust <id> -type T -q N       ENTRADA/SAIDA (delta) o AJUSTE (valor absoluto)
  delete <id>                    borrar item (las transacciones se conservan)
  transactions [id]              log completo o de un item
  brands                         marcas distintas presentes
  add-brand <nombre>             nota: la marca se materializa con su primer item
`)
}

func cmdItems(ctx context.Context, c *client.Client) error {
	items, err := c.ListItems(ctx)
	if err != nil {
		return err
	}
	printItems(items)
	return nil
}

func cmdItem(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("uso: item <id>")
	}
	it, err := c.GetItem(ctx, args[0])
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("item %s no encontrado", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Printf("id:          %s\n", it.ID)
	fmt.Printf("marca:       %s\n", it.Brand)
	fmt.Printf("descripción: %s\n", it.Description)
	fmt.Printf("cantidad:    %d\n", it.CurrentQuantity)
	fmt.Printf("actualizado: %s\n", formatDateTimeBR(it.LastUpdated))
	return nil
}

func cmdFilter(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	desc := fs.String("d", "", "substring de descripción (case-insensitive)")
	brandsCSV := fs.String("b", "", "marcas separadas por coma (OR)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var brands []string
	if *brandsCSV != "" {
		for _, b := range strings.Split(*brandsCSV, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brands = append(brands, b)
			}
		}
	}
	items, err := c.FilterItems(ctx, *desc, brands)
	if err != nil {
		return err
	}
	printItems(items)
	return nil
}

func cmdAdd(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	brand := fs.String("brand", "", "marca (requerida)")
	desc := fs.String("desc", "", "descripción (requerida)")
	qty := fs.Int64("q", 0, "cantidad inicial (>= 0)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	it, err := c.CreateItem(ctx, *brand, *desc, *qty)
	if err != nil {
		return err
	}
	fmt.Printf("item creado: %s (%s %s, cantidad %d)\n", it.ID, it.Brand, it.Description, it.CurrentQuantity)
	return nil
}

func cmdAdjust(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("uso: adjust <id> -type ENTRADA|SAIDA|AJUSTE -q N")
	}
	id := args[0]
	fs := flag.NewFlagSet("adjust", flag.ExitOnError)
	movType := fs.String("type", "", "ENTRADA, SAIDA o AJUSTE")
	qty := fs.Int64("q", 0, "delta (ENTRADA/SAIDA) o valor objetivo (AJUSTE)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	msg, err := c.AdjustQuantity(ctx, id, strings.ToUpper(*movType), *qty)
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("item %s no encontrado", id)
	}
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func cmdDelete(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("uso: delete <id>")
	}
	err := c.DeleteItem(ctx, args[0])
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("item %s no encontrado", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Println("item eliminado (sus transacciones se conservan)")
	return nil
}

func cmdTransactions(ctx context.Context, c *client.Client, args []string) error {
	var (
		txs []client.Transaction
		err error
	)
	if len(args) > 0 {
		txs, err = c.ListItemTransactions(ctx, args[0])
	} else {
		txs, err = c.ListTransactions(ctx)
	}
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Println("sin transacciones")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FECHA\tTIPO\tDELTA\tITEM\tID")
	for _, t := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			formatDateTimeBR(t.Timestamp), t.Type, formatDelta(t.QuantityChange), t.ItemID, t.ID)
	}
	return w.Flush()
}

func cmdBrands(ctx context.Context, c *client.Client) error {
	brands, err := c.ListBrands(ctx)
	if err != nil {
		return err
	}
	if len(brands) == 0 {
		fmt.Println("sin marcas registradas")
		return nil
	}
	for _, b := range brands {
		fmt.Println(b)
	}
	return nil
}

// cmdAddBrand modo degradado documentado: el servidor no tiene endpoint de
// creación de marcas; una marca existe cuando su primer item la referencia.
func cmdAddBrand(args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return errors.New("uso: add-brand <nombre>")
	}
	fmt.Printf("la marca %q no se persiste por sí sola: crea el primer item con\n", args[0])
	fmt.Printf("  estoque add -brand %q -desc \"...\" -q 0\n", args[0])
	return nil
}

func printItems(items []client.Item) {
	if len(items) == 0 {
		fmt.Println("ningún item encontrado")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MARCA\tDESCRIPCIÓN\tCANTIDAD\tACTUALIZADO\tID")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			it.Brand, it.Description, it.CurrentQuantity, formatDateTimeBR(it.LastUpdated), it.ID)
	}
	_ = w.Flush()
}

// formatDateTimeBR formatea fecha y hora en el patrón BR dd/mm/yyyy HH:MM
// que usaba la UI original.
func formatDateTimeBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/2006 15:04")
}

func formatDelta(d int64) string {
	if d > 0 {
		return "+" + strconv.FormatInt(d, 10)
	}
	return strconv.FormatInt(d, 10)
}
