package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lunor.shop/app/internal/cartclient"
)

var addToCartOpts struct {
	baseURL string
	id      uint
	name    string
}

var addToCartCmd = &cobra.Command{
	Use:   "add-to-cart",
	Short: "Add one unit of a product through a running storefront",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := cartclient.New(addToCartOpts.baseURL, cartclient.WithLogger(logger))
		if err != nil {
			return err
		}
		n := client.AddToCart(cmd.Context(), addToCartOpts.id, addToCartOpts.name)
		fmt.Fprintln(cmd.OutOrStdout(), n.Message)
		if !n.OK() {
			return errors.New("add to cart failed")
		}
		return nil
	},
}

func init() {
	f := addToCartCmd.Flags()
	f.StringVar(&addToCartOpts.baseURL, "base-url", "http://localhost:8080", "storefront address")
	f.UintVar(&addToCartOpts.id, "id", 0, "product id")
	f.StringVar(&addToCartOpts.name, "name", "", "product name shown in the notice")
	_ = addToCartCmd.MarkFlagRequired("id")
}
